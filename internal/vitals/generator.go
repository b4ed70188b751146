package vitals

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"wardwatch/internal/model"
)

// Simulated generator ranges. The engine does not enforce these on ingested
// readings; only the generator respects them.
const (
	heartRateMin = 60
	heartRateMax = 100
	systolicMin  = 100
	systolicMax  = 130
	diastolicMin = 60
	diastolicMax = 90
	oxygenSatMin = 90
	oxygenSatMax = 100
	tempMin      = 36.5
	tempMax      = 39.5
)

var patientNames = []string{
	"Ana Morales", "Luis Herrera", "Carmen Diaz", "Jorge Castillo",
	"Sofia Reyes", "Miguel Torres", "Elena Vargas", "Pablo Mendoza",
	"Lucia Romero", "Diego Fuentes", "Valeria Cruz", "Andres Silva",
}

// Generator produces one synthetic reading per bed per tick. Status is drawn
// independently of the numeric metrics; the two are deliberately not
// reconciled, matching the feed this replaces.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator seeds the simulator. Seed 0 selects a time-based seed.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Tick draws exactly bedCount readings, one per bed 1..bedCount, each metric
// uniform over its range. It never blocks and never fails.
func (g *Generator) Tick(bedCount int) []model.VitalReading {
	if bedCount <= 0 {
		return nil
	}
	now := time.Now().UTC()
	statuses := []model.VitalStatus{model.StatusStable, model.StatusUnderObservation, model.StatusCritical}
	g.mu.Lock()
	defer g.mu.Unlock()
	readings := make([]model.VitalReading, 0, bedCount)
	for bed := 1; bed <= bedCount; bed++ {
		readings = append(readings, model.VitalReading{
			Timestamp:    now,
			Bed:          bed,
			PatientName:  patientName(bed),
			HeartRate:    heartRateMin + g.rng.Intn(heartRateMax-heartRateMin+1),
			Systolic:     systolicMin + g.rng.Intn(systolicMax-systolicMin+1),
			Diastolic:    diastolicMin + g.rng.Intn(diastolicMax-diastolicMin+1),
			OxygenSat:    oxygenSatMin + g.rng.Intn(oxygenSatMax-oxygenSatMin+1),
			TemperatureC: tempMin + g.rng.Float64()*(tempMax-tempMin),
			Status:       statuses[g.rng.Intn(len(statuses))],
			Source:       "simulator",
		})
	}
	return readings
}

func patientName(bed int) string {
	if bed >= 1 && bed <= len(patientNames) {
		return patientNames[bed-1]
	}
	return fmt.Sprintf("Patient %d", bed)
}
