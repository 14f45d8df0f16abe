package catalog_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"promptcraft/internal/catalog"
	"promptcraft/pkg/routes"
)

func TestTemplatesCoverAllQuestions(t *testing.T) {
	questions := catalog.Questions()
	if len(questions) != 6 {
		t.Fatalf("question count: got %d, want 6", len(questions))
	}

	for _, tmpl := range catalog.Templates() {
		t.Run(tmpl.ID, func(t *testing.T) {
			if tmpl.IdeaText == "" {
				t.Error("idea text is empty")
			}
			for _, q := range questions {
				answer, ok := tmpl.PrefilledAnswers[q.ID]
				if !ok {
					t.Errorf("missing prefilled answer for %s", q.ID)
					continue
				}
				if answer.Value == "" || answer.Explanation == "" {
					t.Errorf("incomplete prefilled answer for %s: %+v", q.ID, answer)
				}
			}
		})
	}
}

func TestQuestionDefaults(t *testing.T) {
	for _, q := range catalog.Questions() {
		t.Run(q.ID, func(t *testing.T) {
			if !q.AllowCustom {
				t.Error("custom answers should be allowed")
			}
			if q.Placeholder == "" {
				t.Error("placeholder is empty")
			}
			if len(q.Options) == 0 {
				t.Error("no options defined")
			}
			for _, opt := range q.Options {
				if opt.Value == "" || opt.Label == "" || opt.Explanation == "" {
					t.Errorf("incomplete option: %+v", opt)
				}
			}
		})
	}
}

func TestFindTemplate(t *testing.T) {
	tmpl, err := catalog.FindTemplate("task_tracker")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if tmpl.ID != "task_tracker" {
		t.Errorf("id: got %s, want task_tracker", tmpl.ID)
	}

	if _, err := catalog.FindTemplate("no_such_template"); !errors.Is(err, catalog.ErrTemplateNotFound) {
		t.Errorf("got %v, want ErrTemplateNotFound", err)
	}
}

func TestCategoriesAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range catalog.Categories() {
		if seen[c] {
			t.Errorf("duplicate category %s", c)
		}
		seen[c] = true
	}
	if len(seen) == 0 {
		t.Fatal("no categories returned")
	}
}

func TestQuestionKindUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    catalog.QuestionKind
		wantErr bool
	}{
		{"choice", `"choice"`, catalog.KindChoice, false},
		{"text", `"text"`, catalog.KindText, false},
		{"both", `"both"`, catalog.KindBoth, false},
		{"unknown", `"dropdown"`, "", true},
		{"not a string", `7`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k catalog.QuestionKind
			err := json.Unmarshal([]byte(tt.input), &k)
			if tt.wantErr {
				if err == nil {
					t.Error("expected unmarshal error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if k != tt.want {
				t.Errorf("got %s, want %s", k, tt.want)
			}
		})
	}
}

func catalogMux(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys := catalog.New(logger)

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestTemplatesEndpointCategoryFilter(t *testing.T) {
	mux := catalogMux(t)

	tmpl, err := catalog.FindTemplate("task_tracker")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/templates?category="+tmpl.Category, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var got []catalog.Template
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no templates returned for known category")
	}
	for _, tm := range got {
		if tm.Category != tmpl.Category {
			t.Errorf("template %s has category %s, want %s", tm.ID, tm.Category, tmpl.Category)
		}
	}
}

func TestTemplateEndpointNotFound(t *testing.T) {
	mux := catalogMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/templates/no_such_template", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestQuestionsEndpoint(t *testing.T) {
	mux := catalogMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/questions", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var got []catalog.QuestionDefinition
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("question count: got %d, want 6", len(got))
	}
}
