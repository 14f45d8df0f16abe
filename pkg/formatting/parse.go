// Package formatting provides parsing utilities for loosely structured
// model output.
package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when content is not valid JSON and no
// parseable fenced block could be recovered from it.
var ErrParseFailed = errors.New("failed to parse response")

var fencedBlock = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// Parse unmarshals content as JSON into T. Models often wrap JSON in a
// markdown code fence, so a failed direct parse falls back to the first
// fenced block before giving up with ErrParseFailed.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	if inner, ok := extractFenced(content); ok {
		if err := json.Unmarshal([]byte(inner), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, content)
}

func extractFenced(content string) (string, bool) {
	matches := fencedBlock.FindStringSubmatch(content)
	if len(matches) < 2 {
		return "", false
	}
	return strings.TrimSpace(matches[1]), true
}
