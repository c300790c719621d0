package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"survey-bot/internal/domain"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}
	return path
}

func TestLoadValidCatalog(t *testing.T) {
	path := writeCatalog(t, `{"quiz": [
		{"type": "yes_no", "question": "Ready?"},
		{"type": "multiple_choice", "question": "Pick", "options": ["A", "B"]},
		{"type": "free_text", "question": "Anything else?"}
	]}`)

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cat.Len() != 3 {
		t.Fatalf("expected 3 questions, got %d", cat.Len())
	}
	q, ok := cat.Question(1)
	if !ok || q.Type != domain.QuestionMultipleChoice || len(q.Options) != 2 {
		t.Fatalf("unexpected question 1: %+v ok=%v", q, ok)
	}
	if _, ok := cat.Question(3); ok {
		t.Fatalf("expected out-of-range lookup to fail")
	}
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	path := writeCatalog(t, `{"quiz": []}`)
	if _, err := Load(path); !errors.Is(err, domain.ErrEmptyCatalog) {
		t.Fatalf("expected empty catalog error, got %v", err)
	}
}

func TestLoadRejectsIncompleteQuestion(t *testing.T) {
	path := writeCatalog(t, `{"quiz": [{"type": "yes_no"}]}`)
	if _, err := Load(path); !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected invalid question error, got %v", err)
	}
}

func TestLoadAcceptsUnknownType(t *testing.T) {
	path := writeCatalog(t, `{"quiz": [{"type": "number", "question": "How many?"}]}`)
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("unknown type should only warn, got %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", cat.Len())
	}
}

func TestHeaderColumns(t *testing.T) {
	path := writeCatalog(t, `{"quiz": [
		{"type": "yes_no", "question": "Ready?"},
		{"type": "free_text", "question": "Why?"}
	]}`)
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	header := cat.Header()
	want := []string{"User", "Ready?", "Why?", "Timestamp"}
	if len(header) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(header))
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("column %d: expected %q, got %q", i, want[i], header[i])
		}
	}
}
