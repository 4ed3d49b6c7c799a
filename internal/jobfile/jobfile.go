// Package jobfile reads a JSON batch description and validates it
// against a JSON Schema before a run is accepted.
package jobfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Job describes one batch run as submitted by an operator.
type Job struct {
	Source  string  `json:"source"`
	Month   string  `json:"month"`
	Year    string  `json:"year"`
	Roster  string  `json:"roster,omitempty"`
	Options Options `json:"options,omitempty"`
}

// Options mirrors the tunables of the classification pipeline.
type Options struct {
	UseFuzzyMatching    bool    `json:"use_fuzzy_matching,omitempty"`
	OCRTextThreshold    int     `json:"ocr_text_threshold,omitempty"`
	FuzzyScoreThreshold int     `json:"fuzzy_score_threshold,omitempty"`
	FuzzyCandidateLimit int     `json:"fuzzy_candidate_limit,omitempty"`
	OCRUpscaleFactor    float64 `json:"ocr_upscale_factor,omitempty"`
	OCRLanguage         string  `json:"ocr_language,omitempty"`
	StripDiacritics     bool    `json:"strip_diacritics,omitempty"`
	DocumentLabel       string  `json:"document_label,omitempty"`
}

// BuildJobSchema returns the job file's JSON Schema (draft 2020-12
// subset) as a generic map.
func BuildJobSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"source": map[string]any{"type": "string", "minLength": 1},
			"month":  map[string]any{"type": "string", "pattern": `^(0[1-9]|1[0-2])$`},
			"year":   map[string]any{"type": "string", "pattern": `^\d{4}$`},
			"roster": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"use_fuzzy_matching":    map[string]any{"type": "boolean"},
					"ocr_text_threshold":    map[string]any{"type": "integer", "minimum": 0},
					"fuzzy_score_threshold": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"fuzzy_candidate_limit": map[string]any{"type": "integer", "minimum": 1},
					"ocr_upscale_factor":    map[string]any{"type": "number", "exclusiveMinimum": 0},
					"ocr_language":          map[string]any{"type": "string"},
					"strip_diacritics":      map[string]any{"type": "boolean"},
					"document_label":        map[string]any{"type": "string"},
				},
			},
		},
		"required": []string{"source", "month", "year"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("job file does not match schema: %w", err)
	}
	return nil
}

// Load reads, validates and decodes a job file.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	if err := ValidateJSONAgainstSchema(BuildJobSchema(), data); err != nil {
		return nil, err
	}
	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decode job file: %w", err)
	}
	return &j, nil
}
