// Package catalog provides the static template and clarifying-question
// catalogs that seed the prompt wizard. Catalog data ships with the
// application and is never mutated at runtime.
package catalog

import (
	"encoding/json"
	"slices"
)

// QuestionKind describes how a clarifying question accepts input.
type QuestionKind string

// Valid question kinds.
const (
	KindChoice QuestionKind = "choice"
	KindText   QuestionKind = "text"
	KindBoth   QuestionKind = "both"
)

var kinds = []QuestionKind{
	KindChoice,
	KindText,
	KindBoth,
}

// Kinds returns the list of valid question kinds.
func Kinds() []QuestionKind {
	return kinds
}

// UnmarshalJSON validates that the decoded string is a known kind value.
func (k *QuestionKind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := QuestionKind(raw)
	if !slices.Contains(kinds, v) {
		return ErrInvalidKind
	}
	*k = v
	return nil
}

// QuestionOption is one selectable answer with its canned explanation.
type QuestionOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

// QuestionDefinition describes one clarifying question: its prompt text,
// option set, and free-text fallback behavior.
type QuestionDefinition struct {
	ID          string           `json:"id"`
	Question    string           `json:"question"`
	Kind        QuestionKind     `json:"kind"`
	Options     []QuestionOption `json:"options"`
	Placeholder string           `json:"placeholder"`
	AllowCustom bool             `json:"allowCustom"`
}

// PrefilledAnswer is a template-supplied answer to one clarifying question.
type PrefilledAnswer struct {
	Value       string `json:"value"`
	Explanation string `json:"explanation"`
}

// Template is a canned app archetype: an idea description plus pre-filled
// answers keyed by question id.
type Template struct {
	ID               string                     `json:"id"`
	Name             string                     `json:"name"`
	Category         string                     `json:"category"`
	Description      string                     `json:"description"`
	Icon             string                     `json:"icon"`
	IdeaText         string                     `json:"ideaText"`
	PrefilledAnswers map[string]PrefilledAnswer `json:"prefilledAnswers"`
	Features         []string                   `json:"features"`
}
