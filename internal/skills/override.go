package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// taxonomySchema validates user-supplied taxonomy override files before any
// pattern is compiled.
const taxonomySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["skills"],
  "properties": {
    "skills": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "pattern": {"type": "string", "minLength": 1},
          "current": {"type": "boolean"},
          "emerging": {"type": "boolean"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

// TaxonomyError represents an invalid taxonomy override file.
type TaxonomyError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TaxonomyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy error: %s: %s", e.Path, e.Message)
}

func (e *TaxonomyError) Unwrap() error {
	return e.Cause
}

type taxonomyFile struct {
	Skills []taxonomyEntry `json:"skills"`
}

type taxonomyEntry struct {
	Name     string `json:"name"`
	Pattern  string `json:"pattern,omitempty"`
	Current  *bool  `json:"current,omitempty"`
	Emerging bool   `json:"emerging,omitempty"`
}

// LoadTaxonomy builds an extractor from a JSON override file, replacing the
// default taxonomy entirely. The file is validated against an embedded JSON
// Schema first, so a malformed entry is reported with its field path instead
// of failing at regexp-compile time. Entries without an explicit pattern
// match their name as a literal, with regex metacharacters escaped ("C++"
// stays a literal match, it does not become a quantifier error).
func LoadTaxonomy(path string) (*Extractor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TaxonomyError{Path: path, Message: "cannot read taxonomy file", Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(taxonomySchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, &TaxonomyError{Path: path, Message: "cannot validate taxonomy file", Cause: err}
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, &TaxonomyError{Path: path, Message: strings.Join(details, "; ")}
	}

	var file taxonomyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &TaxonomyError{Path: path, Message: "cannot parse taxonomy file", Cause: err}
	}

	entries := make([]Entry, 0, len(file.Skills))
	for i, s := range file.Skills {
		raw := s.Pattern
		if raw == "" {
			raw = regexp.QuoteMeta(s.Name)
		}
		pattern, err := regexp.Compile(`(?i)` + raw)
		if err != nil {
			return nil, &TaxonomyError{Path: path, Message: fmt.Sprintf("skills[%d]: invalid pattern %q", i, raw), Cause: err}
		}
		current := true
		if s.Current != nil {
			current = *s.Current
		}
		entries = append(entries, Entry{
			Skill:    Skill(len(skillNames) + i), // custom ids sit past the built-in range
			Name:     s.Name,
			Pattern:  pattern,
			Current:  current,
			Emerging: s.Emerging,
		})
	}
	return &Extractor{entries: entries}, nil
}
