// Package stats derives summary statistics from a fetched record sequence:
// total and unique URL counts plus frequency tables keyed by file-type
// category and by HTTP status code.
package stats

import (
	"sort"
	"strings"

	"github.com/thesavant42/wayback-extractor/internal/models"
)

// UnknownStatus is the bucket for records without a status code
const UnknownStatus = "unknown"

// CategoryCount pairs a category or status label with its record count
type CategoryCount struct {
	Label string
	Count int
}

// Compute aggregates the record sequence in a single pass.
// Invariants: Unique <= Total, and both frequency tables sum to Total.
func Compute(records []models.CDXRecord) models.Stats {
	s := models.Stats{
		Total:    len(records),
		ByType:   make(map[string]int),
		ByStatus: make(map[string]int),
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.URL] = struct{}{}

		status := UnknownStatus
		if r.StatusCode != nil {
			status = *r.StatusCode
		}
		s.ByStatus[status]++

		mime := ""
		if r.MimeType != nil {
			mime = *r.MimeType
		}
		category := Categorize(mime, r.URL)
		if _, ok := s.ByType[category]; !ok {
			s.TypeOrder = append(s.TypeOrder, category)
		}
		s.ByType[category]++
	}

	s.Unique = len(seen)
	return s
}

// Categorize maps a mime type (with URL extension fallback) to a coarse
// file-type label. Order is significant: "json" mimes classify as
// JavaScript because the mime rules run before the extension rules.
func Categorize(mime, url string) string {
	m := strings.ToLower(mime)
	switch {
	case strings.Contains(m, "html"):
		return "HTML"
	case strings.Contains(m, "image"):
		return "Image"
	case strings.Contains(m, "css"):
		return "CSS"
	case strings.Contains(m, "javascript"), strings.Contains(m, "json"):
		return "JavaScript"
	case strings.Contains(m, "pdf"):
		return "PDF"
	case strings.Contains(m, "video"):
		return "Video"
	}

	switch {
	case hasAnySuffix(url, ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"):
		return "Image"
	case strings.HasSuffix(url, ".css"):
		return "CSS"
	case strings.HasSuffix(url, ".js"):
		return "JavaScript"
	case strings.HasSuffix(url, ".pdf"):
		return "PDF"
	}

	return "Other"
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// TopCategories returns the n most frequent file-type categories,
// descending by count. Ties keep first-occurrence order from the
// aggregation pass.
func TopCategories(s models.Stats, n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(s.TypeOrder))
	for _, label := range s.TypeOrder {
		out = append(out, CategoryCount{Label: label, Count: s.ByType[label]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// StatusBreakdown returns up to n status-code buckets sorted
// lexicographically by code string.
func StatusBreakdown(s models.Stats, n int) []CategoryCount {
	codes := make([]string, 0, len(s.ByStatus))
	for code := range s.ByStatus {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	if len(codes) > n {
		codes = codes[:n]
	}

	out := make([]CategoryCount, 0, len(codes))
	for _, code := range codes {
		out = append(out, CategoryCount{Label: code, Count: s.ByStatus[code]})
	}
	return out
}

// Percent returns count as a percentage of total, 0 when total is 0
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
