package auth

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strings"

	"wardwatch/internal/model"
)

// LoadCredentials reads the email,password table once at startup. A missing
// or unreadable file degrades to an empty collection so the login screen
// stays available; every attempt then fails authentication.
func LoadCredentials(path string, logger *slog.Logger) []model.Credential {
	f, err := os.Open(path)
	if err != nil {
		if logger != nil {
			logger.Warn("credential file unavailable, starting with empty user table", "path", path, "err", err)
		}
		return nil
	}
	defer f.Close()
	creds, err := ParseCredentials(f)
	if err != nil {
		if logger != nil {
			logger.Warn("credential file unreadable, starting with empty user table", "path", path, "err", err)
		}
		return nil
	}
	if logger != nil {
		logger.Info("credentials loaded", "path", path, "count", len(creds))
	}
	return creds
}

// ParseCredentials decodes a CSV user table. The first row is a header; the
// email and password columns are located by name so extra columns and
// arbitrary column order are tolerated.
func ParseCredentials(r io.Reader) ([]model.Credential, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	emailIdx, passwordIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "email":
			emailIdx = i
		case "password":
			passwordIdx = i
		}
	}
	if emailIdx < 0 || passwordIdx < 0 {
		// Headerless two-column file: treat the first row as data.
		if len(header) >= 2 {
			emailIdx, passwordIdx = 0, 1
			creds := []model.Credential{credentialFromRecord(header, emailIdx, passwordIdx)}
			return appendRecords(creds, reader, emailIdx, passwordIdx)
		}
		return nil, nil
	}
	return appendRecords(nil, reader, emailIdx, passwordIdx)
}

func appendRecords(creds []model.Credential, reader *csv.Reader, emailIdx, passwordIdx int) ([]model.Credential, error) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return creds, nil
		}
		if err != nil {
			return nil, err
		}
		if emailIdx >= len(record) || passwordIdx >= len(record) {
			continue
		}
		c := credentialFromRecord(record, emailIdx, passwordIdx)
		if c.Email == "" {
			continue
		}
		creds = append(creds, c)
	}
}

func credentialFromRecord(record []string, emailIdx, passwordIdx int) model.Credential {
	return model.Credential{
		Email:    strings.TrimSpace(record[emailIdx]),
		Password: strings.TrimSpace(record[passwordIdx]),
	}
}
