package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

func TestExtractPrimaryCategory(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		fallback bool
	}{
		{"empty string", "", "Other", true},
		{"whitespace only", "   ", "Other", true},
		{"invalid json", "{not json", "Other", true},
		{"empty array", "[]", "Other", true},
		{"missing category field", `[{"id":7}]`, "Other", true},
		{"single tag", `[{"category":"Tech"}]`, "Tech", false},
		{"first of many", `[{"category":"Finance"},{"category":"Tech"}]`, "Finance", false},
		{"doubled quotes", `[{""category"":""Engineering""}]`, "Engineering", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPrimaryCategory(tt.raw)
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, tt.fallback, got.Fallback)
		})
	}
}

func TestExtractPrimaryCategory_ParseErrorIsVisible(t *testing.T) {
	got := ExtractPrimaryCategory("{broken")
	assert.True(t, got.Fallback)
	assert.Error(t, got.Err)
}

func TestEnrich_DerivedColumns(t *testing.T) {
	table := dataset.Table{
		{
			PostingDate: time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC),
			Categories:  `[{"category":"Tech"}]`,
		},
	}

	enriched := Enrich(table)
	require.Len(t, enriched, 1)
	assert.Equal(t, 2023, enriched[0].Year)
	assert.Equal(t, 3, enriched[0].Month)
	assert.Equal(t, "2023-03", enriched[0].YearMonth)
	assert.Equal(t, "Tech", enriched[0].PrimaryCategory)

	// Input is untouched.
	assert.Empty(t, table[0].YearMonth)
}

func TestEnrich_NeverDropsRows(t *testing.T) {
	table := dataset.Table{
		{PostingDate: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), Categories: "garbage"},
		{PostingDate: time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}

	enriched := Enrich(table)
	require.Len(t, enriched, 2)
	assert.Equal(t, "Other", enriched[0].PrimaryCategory)
	assert.Equal(t, "Other", enriched[1].PrimaryCategory)
}

func TestFallbackCount(t *testing.T) {
	table := dataset.Table{
		{Categories: `[{"category":"Tech"}]`},
		{Categories: ""},
		{Categories: "junk"},
	}
	assert.Equal(t, 2, FallbackCount(table))
}
