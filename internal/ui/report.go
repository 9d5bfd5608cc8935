package ui

import (
	"fmt"
	"strings"

	"github.com/thesavant42/wayback-extractor/internal/models"
	"github.com/thesavant42/wayback-extractor/internal/stats"
)

const dividerWidth = 50

// PrintBanner prints the startup banner
func PrintBanner() {
	divider := dividerStyle.Render(strings.Repeat("═", dividerWidth))
	fmt.Println()
	fmt.Println(divider)
	fmt.Println(titleStyle.Render("  WAYBACK URL EXTRACTOR"))
	fmt.Println(subtitleStyle.Render("  Extract All Archived URLs"))
	fmt.Println(divider)
	fmt.Println()
}

// PrintExtractStart prints the pre-fetch context lines for a run
func PrintExtractStart(domain string, opts models.QueryOptions, limit int) {
	fmt.Println(subtitleStyle.Render(fmt.Sprintf("Extracting URLs from: %s", domain)))
	fmt.Println(dividerStyle.Render(strings.Repeat("━", dividerWidth)))
	fmt.Printf("Fetching up to %d URLs...\n", limit)

	if opts.FromYear > 0 || opts.ToYear > 0 {
		from := "Start"
		if opts.FromYear > 0 {
			from = fmt.Sprintf("%d", opts.FromYear)
		}
		to := "Present"
		if opts.ToYear > 0 {
			to = fmt.Sprintf("%d", opts.ToYear)
		}
		fmt.Printf("Date range: %s to %s\n", from, to)
	}
	if opts.Filter != "" {
		fmt.Printf("Filter: %s\n", opts.Filter)
	}
	if opts.StatusCodes != "" {
		fmt.Printf("Status codes: %s\n", opts.StatusCodes)
	}
	fmt.Println()
}

// PrintSummary prints the extraction statistics report
func PrintSummary(result *models.ExtractionResult) {
	s := result.Stats

	fmt.Println(titleStyle.Render("Extraction Summary"))
	fmt.Println(dividerStyle.Render(strings.Repeat("━", dividerWidth)))

	fmt.Println()
	fmt.Println(labelStyle.Render("URLs:"))
	fmt.Printf("   Total Extracted: %s\n", statStyle.Render(fmt.Sprintf("%d", s.Total)))
	fmt.Printf("   Unique URLs:     %s\n", statStyle.Render(fmt.Sprintf("%d", s.Unique)))

	if result.LimitHit {
		fmt.Println()
		fmt.Println(warnStyle.Render("   Record limit reached - this domain may have more URLs available."))
	}

	if len(s.ByType) > 0 {
		fmt.Println()
		fmt.Println(labelStyle.Render("By File Type:"))
		for _, c := range stats.TopCategories(s, 5) {
			fmt.Printf("   %-12s: %6d (%5.1f%%)\n", c.Label, c.Count, stats.Percent(c.Count, s.Total))
		}
	}

	if len(s.ByStatus) > 0 {
		fmt.Println()
		fmt.Println(labelStyle.Render("By Status Code:"))
		for _, c := range stats.StatusBreakdown(s, 5) {
			fmt.Printf("   %-6s: %6d (%5.1f%%)\n", c.Label, c.Count, stats.Percent(c.Count, s.Total))
		}
	}

	fmt.Println()
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(successStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(errorStyle.Render("Error: " + message))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println(warnStyle.Render(message))
}
