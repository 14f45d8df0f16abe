package synthesis

import (
	"fmt"
	"slices"
	"strings"

	"promptcraft/internal/catalog"
)

// questionPayload is the permissive intermediate shape for model-generated
// questions. Every field is optional; normalization fills the gaps.
type questionPayload struct {
	Questions []rawQuestion `json:"questions"`
}

type rawQuestion struct {
	ID          string      `json:"id"`
	Question    string      `json:"question"`
	Kind        string      `json:"kind"`
	Options     []rawOption `json:"options"`
	Placeholder string      `json:"placeholder"`
	AllowCustom *bool       `json:"allowCustom"`
}

type rawOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

const defaultPlaceholder = "Type your answer..."

var validKinds = []catalog.QuestionKind{
	catalog.KindChoice,
	catalog.KindText,
	catalog.KindBoth,
}

// normalizeQuestions coerces model output into structurally complete
// question definitions. Missing fields receive documented defaults;
// entries without question text are dropped entirely.
func normalizeQuestions(raw []rawQuestion) []catalog.QuestionDefinition {
	questions := make([]catalog.QuestionDefinition, 0, len(raw))

	for i, q := range raw {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}

		def := catalog.QuestionDefinition{
			ID:          q.ID,
			Question:    q.Question,
			Kind:        catalog.QuestionKind(q.Kind),
			Placeholder: q.Placeholder,
			AllowCustom: true,
		}

		if def.ID == "" {
			def.ID = fmt.Sprintf("question_%d", i+1)
		}
		if !slices.Contains(validKinds, def.Kind) {
			def.Kind = catalog.KindBoth
		}
		if def.Placeholder == "" {
			def.Placeholder = defaultPlaceholder
		}
		if q.AllowCustom != nil {
			def.AllowCustom = *q.AllowCustom
		}

		def.Options = make([]catalog.QuestionOption, 0, len(q.Options))
		for j, opt := range q.Options {
			value := opt.Value
			if value == "" {
				value = fmt.Sprintf("option_%d", j+1)
			}
			label := opt.Label
			if label == "" {
				label = value
			}
			def.Options = append(def.Options, catalog.QuestionOption{
				Value:       value,
				Label:       label,
				Explanation: opt.Explanation,
			})
		}

		questions = append(questions, def)
	}

	return questions
}
