package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"wardwatch/internal/model"
)

// Header is the fixed column order of the report download.
var Header = []string{
	"Bed", "Name", "Heart Rate", "Blood Pressure", "O2 Sat (%)", "Temp (°C)", "Status", "Last Updated",
}

// WriteCSV serializes the given readings as the flat report table, one row
// per bed, blood pressure rendered systolic/diastolic.
func WriteCSV(w io.Writer, readings []model.VitalReading) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range readings {
		row := []string{
			strconv.Itoa(r.Bed),
			r.PatientName,
			strconv.Itoa(r.HeartRate),
			fmt.Sprintf("%d/%d", r.Systolic, r.Diastolic),
			strconv.Itoa(r.OxygenSat),
			strconv.FormatFloat(r.TemperatureC, 'f', 1, 64),
			r.Status.Label(),
			r.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename returns a timestamped name for the download.
func Filename(ts time.Time) string {
	return "vitals_" + ts.UTC().Format("20060102_150405") + ".csv"
}
