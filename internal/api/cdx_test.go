package api

import (
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thesavant42/wayback-extractor/internal/config"
	"github.com/thesavant42/wayback-extractor/internal/models"
)

func testClient(endpoint string) *CDXClient {
	return NewCDXClient(config.Config{
		CDXEndpoint: endpoint,
		FreeLimit:   50000,
		Timeout:     5 * time.Second,
	}, log.New(io.Discard))
}

// TestNormalizeDomain tests scheme/slash stripping and validation
func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"example.com", "example.com", false},
		{"http://example.com", "example.com", false},
		{"https://example.com/", "example.com", false},
		{"  HTTPS://Example.COM/  ", "example.com", false},
		{"blog.example.co.uk", "blog.example.co.uk", false},
		{"", "", true},
		{"https:///", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDomain(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NormalizeDomain(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestBuildCDXQuery verifies the query string is built correctly
func TestBuildCDXQuery(t *testing.T) {
	tests := []struct {
		name        string
		domain      string
		opts        models.QueryOptions
		wantParts   []string
		absentParts []string
	}{
		{
			name:      "plain domain",
			domain:    "example.com",
			wantParts: []string{"url=example.com/*", "output=json", "fl=original,timestamp,statuscode,mimetype", "collapse=urlkey", "limit=50000"},
		},
		{
			name:      "year range",
			domain:    "example.com",
			opts:      models.QueryOptions{FromYear: 2020, ToYear: 2023},
			wantParts: []string{"from=2020", "to=2023"},
		},
		{
			name:      "pattern filter",
			domain:    "example.com",
			opts:      models.QueryOptions{Filter: "blog"},
			wantParts: []string{"filter=original%3A.%2Ablog"},
		},
		{
			name:        "status filter wins over pattern",
			domain:      "example.com",
			opts:        models.QueryOptions{Filter: "blog", StatusCodes: "200,301"},
			wantParts:   []string{"filter=statuscode%3A200%2C301"},
			absentParts: []string{"original%3A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := BuildCDXQuery(tt.domain, tt.opts, 50000)

			// The wildcard asterisk must stay literal for the CDX API
			if strings.Contains(query, "url=example.com%2F%2A") {
				t.Errorf("BuildCDXQuery() wildcard is encoded: %q", query)
			}

			for _, part := range tt.wantParts {
				if !strings.Contains(query, part) {
					t.Errorf("BuildCDXQuery() = %q, want to contain %q", query, part)
				}
			}
			for _, part := range tt.absentParts {
				if strings.Contains(query, part) {
					t.Errorf("BuildCDXQuery() = %q, must not contain %q", query, part)
				}
			}
		})
	}
}

// TestEffectiveLimit verifies clamping to the free-tier ceiling
func TestEffectiveLimit(t *testing.T) {
	client := testClient("http://unused")

	tests := []struct {
		requested int
		want      int
	}{
		{0, 50000},
		{-1, 50000},
		{100, 100},
		{50000, 50000},
		{50001, 50000},
		{1000000, 50000},
	}

	for _, tt := range tests {
		if got := client.EffectiveLimit(tt.requested); got != tt.want {
			t.Errorf("EffectiveLimit(%d) = %d, want %d", tt.requested, got, tt.want)
		}
	}
}

const sampleResponse = `[
["original","timestamp","statuscode","mimetype"],
["http://example.com/","20200101000000","200","text/html"],
["http://example.com/style.css","20200102000000","200","text/css"],
["http://example.com/","20210101000000","301","text/html"]
]`

// TestFetch exercises the full request/parse path against a local server
func TestFetch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := testClient(server.URL)
	records, err := client.Fetch("example.com", models.QueryOptions{})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if !strings.Contains(gotQuery, "url=example.com/*") {
		t.Errorf("request query missing wildcard target: %q", gotQuery)
	}

	first := records[0]
	if first.URL != "http://example.com/" || first.Timestamp != "20200101000000" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.StatusCode == nil || *first.StatusCode != "200" {
		t.Errorf("first record status = %v, want 200", first.StatusCode)
	}
	if first.MimeType == nil || *first.MimeType != "text/html" {
		t.Errorf("first record mime = %v, want text/html", first.MimeType)
	}
}

// TestFetchGzip verifies explicitly gzip-encoded responses are decompressed
func TestFetchGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(sampleResponse))
		_ = gz.Close()
	}))
	defer server.Close()

	records, err := testClient(server.URL).Fetch("example.com", models.QueryOptions{})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
}

// TestFetchEmptyResult verifies a header-only response maps to ErrEmptyResult
func TestFetchEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"header only", `[["original","timestamp","statuscode","mimetype"]]`},
		{"empty array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := testClient(server.URL).Fetch("example.com", models.QueryOptions{})
			if !errors.Is(err, ErrEmptyResult) {
				t.Errorf("Fetch() error = %v, want ErrEmptyResult", err)
			}
		})
	}
}

// TestFetchErrors verifies non-2xx and malformed payloads map to FetchError
func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "overloaded", http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not": "an array"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := testClient(server.URL).Fetch("example.com", models.QueryOptions{})

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Errorf("Fetch() error = %v, want *FetchError", err)
			}
		})
	}
}

// TestParseCDXResponseMissingFields verifies "-" and short rows are tolerated
func TestParseCDXResponseMissingFields(t *testing.T) {
	body := `[
["original","timestamp","statuscode","mimetype"],
["http://example.com/a","20200101000000","-","-"],
["http://example.com/b","20200101000001"],
["http://example.com/doc.pdf","20200101000002","200"]
]`

	records, err := parseCDXResponse([]byte(body))
	if err != nil {
		t.Fatalf("parseCDXResponse failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	if records[0].StatusCode != nil || records[0].MimeType != nil {
		t.Errorf("dash fields should parse as absent: %+v", records[0])
	}
	if records[1].StatusCode != nil {
		t.Errorf("short row should have no status: %+v", records[1])
	}
	if records[2].StatusCode == nil || *records[2].StatusCode != "200" {
		t.Errorf("three-field row should keep status: %+v", records[2])
	}
	if records[2].MimeType != nil {
		t.Errorf("three-field row should have no mime: %+v", records[2])
	}
}

// TestFetchIntegration is an integration test that actually calls the API
// Run with: go test -v -run TestFetchIntegration ./internal/api/
func TestFetchIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := NewCDXClient(config.FromEnv(), log.New(io.Discard))
	records, err := client.Fetch("example.com", models.QueryOptions{Limit: 10})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(records) == 0 {
		t.Error("Expected at least some records for example.com")
	}
}
