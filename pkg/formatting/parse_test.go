package formatting_test

import (
	"errors"
	"testing"

	"promptcraft/pkg/formatting"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    payload
	}{
		{
			"direct json",
			`{"name": "widget", "count": 3}`,
			payload{Name: "widget", Count: 3},
		},
		{
			"surrounding whitespace",
			"\n  {\"name\": \"widget\", \"count\": 3}  \n",
			payload{Name: "widget", Count: 3},
		},
		{
			"json code fence",
			"Here you go:\n```json\n{\"name\": \"fenced\", \"count\": 1}\n```",
			payload{Name: "fenced", Count: 1},
		},
		{
			"bare code fence",
			"```\n{\"name\": \"bare\", \"count\": 2}\n```",
			payload{Name: "bare", Count: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[payload](tt.content)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain prose", "I could not produce JSON for that."},
		{"malformed json", `{"name": "broken"`},
		{"malformed fenced json", "```json\n{\"name\":\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formatting.Parse[payload](tt.content)
			if !errors.Is(err, formatting.ErrParseFailed) {
				t.Errorf("got %v, want ErrParseFailed", err)
			}
		})
	}
}
