// Package enrich derives the analytic columns every downstream calculation
// depends on: calendar buckets from the posting date and the primary
// category extracted from the raw categories JSON. Enrichment adds columns
// and never removes rows.
package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

// FallbackCategory is used when the categories field is missing, empty, or
// unparseable.
const FallbackCategory = "Other"

// CategoryResult is the outcome of parsing one categories field. The
// fallback is an explicit branch, not a swallowed exception: callers that
// care (the enrichment audit, row-scoped warnings) can see why a row ended
// up in "Other".
type CategoryResult struct {
	Category string
	Fallback bool
	Err      error
}

// categoryTag is one element of the categories JSON array.
type categoryTag struct {
	Category string `json:"category"`
}

// Enrich returns a new table with Year, Month, YearMonth and PrimaryCategory
// filled on every row. The input table is not modified.
func Enrich(t dataset.Table) dataset.Table {
	out := make(dataset.Table, len(t))
	for i, p := range t {
		p.Year = p.PostingDate.Year()
		p.Month = int(p.PostingDate.Month())
		p.YearMonth = fmt.Sprintf("%04d-%02d", p.Year, p.Month)
		p.PrimaryCategory = ExtractPrimaryCategory(p.Categories).Category
		out[i] = p
	}
	return out
}

// ExtractPrimaryCategory parses a categories field as a JSON array of tag
// objects and returns the category of the first element. Doubled-quote
// escaping artifacts from the source encoding ("" for ") are normalized
// before parsing.
func ExtractPrimaryCategory(raw string) CategoryResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CategoryResult{Category: FallbackCategory, Fallback: true}
	}

	normalized := strings.ReplaceAll(raw, `""`, `"`)

	var tags []categoryTag
	if err := json.Unmarshal([]byte(normalized), &tags); err != nil {
		return CategoryResult{Category: FallbackCategory, Fallback: true, Err: err}
	}
	if len(tags) == 0 || strings.TrimSpace(tags[0].Category) == "" {
		return CategoryResult{Category: FallbackCategory, Fallback: true}
	}
	return CategoryResult{Category: tags[0].Category}
}

// FallbackCount reports how many rows of a table would resolve to the
// fallback category; used by the quality report.
func FallbackCount(t dataset.Table) int {
	count := 0
	for _, p := range t {
		if ExtractPrimaryCategory(p.Categories).Fallback {
			count++
		}
	}
	return count
}
