package models

import "time"

// CDXRecord represents one archived capture from the Wayback Machine CDX API
type CDXRecord struct {
	URL        string
	Timestamp  string  // 14-digit format: YYYYMMDDhhmmss
	StatusCode *string // nullable - some records don't have status
	MimeType   *string // nullable - some records don't have mime type
}

// QueryOptions holds caller-supplied filters for a CDX query
type QueryOptions struct {
	Filter      string // URL substring/pattern filter
	FromYear    int    // 0 = no lower bound
	ToYear      int    // 0 = no upper bound
	StatusCodes string // comma-separated list, e.g. "200,301"
	Limit       int    // 0 = use the free-tier ceiling
}

// Stats holds the aggregate counts derived from a record sequence.
// TypeOrder preserves first-occurrence order of categories so that
// top-N listings break count ties deterministically.
type Stats struct {
	Total     int
	Unique    int
	ByType    map[string]int
	ByStatus  map[string]int
	TypeOrder []string
}

// ExtractionResult owns the fetched records plus their derived stats
type ExtractionResult struct {
	Domain      string
	Records     []CDXRecord
	Stats       Stats
	Elapsed     time.Duration
	LimitUsed   int  // effective (possibly clamped) limit sent to the API
	LimitHit    bool // true when the record count reached the free-tier ceiling
	ExtractedAt time.Time
}

// LimitReached reports whether the extraction filled the free-tier ceiling,
// meaning the domain may have more URLs than were fetched. A run capped by a
// user-lowered limit does not count.
func (r *ExtractionResult) LimitReached(ceiling int) bool {
	return r.Stats.Total >= ceiling
}
