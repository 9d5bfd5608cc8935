// Package export serializes an extraction result to one of the supported
// flat output formats: CSV, JSON or plain text.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/thesavant42/wayback-extractor/internal/models"
)

// ErrUnknownFormat is returned for any format outside csv/json/txt
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported export formats in menu order
var Formats = []string{"csv", "json", "txt"}

// IsValidFormat reports whether format names a supported exporter
func IsValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// DefaultFilename derives the output filename from the domain and format,
// e.g. ("example.com", "json") -> "example_com_urls.json"
func DefaultFilename(domain, format string) string {
	return strings.ReplaceAll(domain, ".", "_") + "_urls." + format
}

// Write serializes the result in the requested format and returns the
// filename written. An empty filename selects the default name.
func Write(result *models.ExtractionResult, format, filename string) (string, error) {
	if !IsValidFormat(format) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if filename == "" {
		filename = DefaultFilename(result.Domain, format)
	}

	var err error
	switch format {
	case "csv":
		err = writeCSV(result, filename)
	case "json":
		err = writeJSON(result, filename)
	case "txt":
		err = writeTXT(result, filename)
	}
	if err != nil {
		return "", err
	}

	return filename, nil
}

func writeCSV(result *models.ExtractionResult, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"url", "timestamp", "status_code", "mime_type"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range result.Records {
		row := []string{r.URL, r.Timestamp, deref(r.StatusCode), deref(r.MimeType)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// jsonDocument is the top-level shape of the JSON export
type jsonDocument struct {
	Domain      string    `json:"domain"`
	ExtractedAt string    `json:"extracted_at"`
	Stats       jsonStats `json:"stats"`
	URLs        []jsonURL `json:"urls"`
}

type jsonStats struct {
	TotalURLs  int `json:"total_urls"`
	UniqueURLs int `json:"unique_urls"`
}

type jsonURL struct {
	URL        string  `json:"url"`
	Timestamp  string  `json:"timestamp"`
	StatusCode *string `json:"status_code"`
	MimeType   *string `json:"mime_type"`
}

func writeJSON(result *models.ExtractionResult, filename string) error {
	doc := jsonDocument{
		Domain:      result.Domain,
		ExtractedAt: result.ExtractedAt.Format(time.RFC3339),
		Stats: jsonStats{
			TotalURLs:  result.Stats.Total,
			UniqueURLs: result.Stats.Unique,
		},
		URLs: make([]jsonURL, 0, len(result.Records)),
	}

	for _, r := range result.Records {
		doc.URLs = append(doc.URLs, jsonURL{
			URL:        r.URL,
			Timestamp:  r.Timestamp,
			StatusCode: r.StatusCode,
			MimeType:   r.MimeType,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

func writeTXT(result *models.ExtractionResult, filename string) error {
	var sb strings.Builder
	for _, r := range result.Records {
		sb.WriteString(r.URL)
		sb.WriteString("\n")
	}

	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
