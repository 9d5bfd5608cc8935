package api

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/publicsuffix"

	"github.com/thesavant42/wayback-extractor/internal/config"
	"github.com/thesavant42/wayback-extractor/internal/models"
)

// ErrEmptyResult is returned when the CDX API responds successfully but
// contains no data rows after the header
var ErrEmptyResult = errors.New("no URLs found matching criteria")

// FetchError wraps transport, HTTP and payload failures from the CDX API
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("CDX fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// CDXClient issues one-shot queries against the Wayback Machine CDX API
type CDXClient struct {
	cfg        config.Config
	httpClient *http.Client
	logger     *log.Logger
}

// NewCDXClient creates a CDX API client with the configured hard timeout
func NewCDXClient(cfg config.Config, logger *log.Logger) *CDXClient {
	return &CDXClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// NormalizeDomain strips scheme and trailing slashes from the input and
// validates that a registrable domain remains.
// Examples:
//   - "https://example.com/" -> "example.com"
//   - "blog.example.co.uk"   -> "blog.example.co.uk"
func NormalizeDomain(input string) (string, error) {
	domain := strings.ToLower(strings.TrimSpace(input))
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.Trim(domain, "/")
	domain = strings.TrimSuffix(domain, ".")

	if domain == "" {
		return "", fmt.Errorf("empty domain")
	}

	// publicsuffix handles complex TLDs like .co.uk; the full host
	// (subdomains included) is kept for the query, this only validates
	if _, err := publicsuffix.EffectiveTLDPlusOne(domain); err != nil {
		return "", fmt.Errorf("invalid domain %q: %w", input, err)
	}

	return domain, nil
}

// EffectiveLimit clamps a requested limit to the free-tier ceiling.
// Zero or negative means "use the ceiling".
func (c *CDXClient) EffectiveLimit(requested int) int {
	if requested <= 0 {
		return c.cfg.FreeLimit
	}
	if requested > c.cfg.FreeLimit {
		return c.cfg.FreeLimit
	}
	return requested
}

// BuildCDXQuery constructs the raw query string for the CDX API.
// Returns the query string WITHOUT the leading '?'.
// The asterisk wildcard must NOT be URL-encoded for the CDX API.
// A status-code filter takes precedence over a URL pattern filter; the
// API accepts only one filter expression per request.
func BuildCDXQuery(domain string, opts models.QueryOptions, limit int) string {
	query := fmt.Sprintf(
		"url=%s/*&output=json&fl=original,timestamp,statuscode,mimetype&limit=%d&collapse=urlkey",
		domain,
		limit,
	)

	if opts.FromYear > 0 {
		query += fmt.Sprintf("&from=%d", opts.FromYear)
	}
	if opts.ToYear > 0 {
		query += fmt.Sprintf("&to=%d", opts.ToYear)
	}

	if opts.StatusCodes != "" {
		query += "&filter=" + url.QueryEscape("statuscode:"+opts.StatusCodes)
	} else if opts.Filter != "" {
		query += "&filter=" + url.QueryEscape("original:.*"+opts.Filter)
	}

	return query
}

// Fetch issues a single timed GET against the CDX API and returns the
// parsed records in response order, header row dropped.
// Returns ErrEmptyResult when no data rows came back; every other failure
// (transport, timeout, non-2xx, bad payload) surfaces as a *FetchError.
func (c *CDXClient) Fetch(domain string, opts models.QueryOptions) ([]models.CDXRecord, error) {
	limit := c.EffectiveLimit(opts.Limit)
	if opts.Limit > limit {
		c.logger.Warn("Requested limit exceeds free-tier ceiling, clamping",
			"requested", opts.Limit, "ceiling", limit)
	}
	if opts.StatusCodes != "" && opts.Filter != "" {
		c.logger.Warn("Status-code filter overrides URL pattern filter",
			"status", opts.StatusCodes, "pattern", opts.Filter)
	}

	// Build raw URL string - DO NOT use url.Values as it encodes the asterisk
	rawURL := c.cfg.CDXEndpoint + "?" + BuildCDXQuery(domain, opts, limit)
	c.logger.Debug("CDX request", "url", rawURL, "timeout", c.cfg.Timeout)

	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	// Headers emulating a real browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Referer", "https://web.archive.org/")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Connection", "keep-alive")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("CDX API returned status %d: %s", resp.StatusCode, string(body))}
	}

	// Handle gzip-compressed responses
	// Case-insensitive check covers variations like "gzip", "x-gzip"
	var reader io.Reader = resp.Body
	contentEncoding := strings.ToLower(resp.Header.Get("Content-Encoding"))
	if strings.Contains(contentEncoding, "gzip") {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to create gzip reader: %w", err)}
		}
		defer gzReader.Close()
		reader = gzReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	records, err := parseCDXResponse(body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	c.logger.Debug("CDX response parsed",
		"records", len(records), "elapsed", time.Since(start))

	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	return records, nil
}

// parseCDXResponse parses the CDX JSON response.
// Format: [[header], [record1], [record2], ...]
// Each record: [original, timestamp, statuscode, mimetype]
func parseCDXResponse(body []byte) ([]models.CDXRecord, error) {
	var rawRows [][]string
	if err := json.Unmarshal(body, &rawRows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	records := make([]models.CDXRecord, 0)
	if len(rawRows) == 0 {
		return records, nil
	}

	// Skip header row (index 0) - it contains field names
	for i := 1; i < len(rawRows); i++ {
		row := rawRows[i]

		// Need at least URL and timestamp
		if len(row) < 2 {
			continue
		}

		record := models.CDXRecord{
			URL:       row[0],
			Timestamp: row[1],
		}

		// Status code and mime type may be missing, empty or "-"
		if len(row) > 2 && row[2] != "" && row[2] != "-" {
			status := row[2]
			record.StatusCode = &status
		}
		if len(row) > 3 && row[3] != "" && row[3] != "-" {
			mimeType := row[3]
			record.MimeType = &mimeType
		}

		records = append(records, record)
	}

	return records, nil
}
