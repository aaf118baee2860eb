package report

import (
	"bytes"
	"encoding/json"

	"github.com/obsidian-security/vaultscan/pkg/types"
	log "github.com/sirupsen/logrus"
)

// Status tags the outcome of parsing retire.js output.
type Status int

const (
	// StatusEmpty means retire.js printed nothing.
	StatusEmpty Status = iota
	// StatusOK means the output matched the expected document shape.
	StatusOK
	// StatusMalformed means the output was not valid JSON.
	StatusMalformed
	// StatusSchemaMismatch means the output was JSON without a "data" array.
	StatusSchemaMismatch
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusOK:
		return "ok"
	case StatusMalformed:
		return "malformed"
	case StatusSchemaMismatch:
		return "schema-mismatch"
	default:
		return "unknown"
	}
}

// ParseResult is the validated form of one retire.js invocation's output.
// Results is empty unless Status is StatusOK. Err is set for StatusMalformed.
type ParseResult struct {
	Status  Status
	Results []types.RetireFileResult
	Err     error
}

// retireFile is one entry of the top-level "data" array.
type retireFile struct {
	File    string                   `json:"file"`
	Results []types.RetireFileResult `json:"results"`
}

// ParseRetireOutput validates and flattens the JSON document printed by
// `retire --outputformat json`.
func ParseRetireOutput(out []byte) ParseResult {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return ParseResult{Status: StatusEmpty}
	}

	var raw any
	if err := json.Unmarshal(out, &raw); err != nil {
		return ParseResult{Status: StatusMalformed, Err: &ErrorUnsupported{err}}
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return ParseResult{Status: StatusSchemaMismatch}
	}
	if _, ok := doc["data"].([]any); !ok {
		return ParseResult{Status: StatusSchemaMismatch}
	}

	// The shape is known to be right, decode again into typed structs.
	var typed struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(out, &typed); err != nil {
		return ParseResult{Status: StatusMalformed, Err: &ErrorUnsupported{err}}
	}

	results := []types.RetireFileResult{}
	for _, entry := range typed.Data {
		var f retireFile
		if err := json.Unmarshal(entry, &f); err != nil {
			// An entry of the wrong shape carries no usable findings.
			log.Debugf("Ignoring unexpected retire.js data entry: %v", err)
			continue
		}
		results = append(results, f.Results...)
	}

	return ParseResult{Status: StatusOK, Results: results}
}
