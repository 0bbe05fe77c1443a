// Package extract recovers well-formed JSON from loose model output.
//
// The upstream model is not contractually guaranteed to return bare JSON: it
// may wrap the payload in prose or a markdown code fence. JSON tries three
// strategies in strict order and the earliest success wins, even when a later
// strategy would also succeed with different content:
//
//  1. Parse the text directly
//  2. Parse the interior of the first fenced code block (``` or ```json)
//  3. Parse from the first '[' or '{' to the last matching ']' or '}'
//
// The package is a pure function over strings so it is unit-testable with no
// network dependency.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ExtractionError reports that no parseable JSON could be located.
// Raw retains the original text for diagnostics.
type ExtractionError struct {
	Raw string
}

func (e *ExtractionError) Error() string {
	return "could not extract valid JSON from model response"
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// JSON extracts a JSON value from text, returning *ExtractionError when all
// strategies fail.
func JSON(text string) (interface{}, error) {
	// Strategy 1: direct parse
	var v interface{}
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v, nil
	}

	// Strategy 2: fenced code block
	if m := fencedBlock.FindStringSubmatch(text); m != nil && m[1] != "" {
		if err := json.Unmarshal([]byte(m[1]), &v); err == nil {
			return v, nil
		}
	}

	// Strategy 3: first bracket to its last same-kind closer
	start := strings.IndexAny(text, "[{")
	if start != -1 {
		closer := "}"
		if text[start] == '[' {
			closer = "]"
		}
		end := strings.LastIndex(text, closer)
		if end > start {
			if err := json.Unmarshal([]byte(text[start:end+1]), &v); err == nil {
				return v, nil
			}
		}
	}

	return nil, &ExtractionError{Raw: text}
}
