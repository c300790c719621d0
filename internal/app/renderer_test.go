package app

import (
	"testing"

	"survey-bot/internal/domain"
)

func TestRenderYesNo(t *testing.T) {
	p := Render(0, domain.Question{Type: domain.QuestionYesNo, Text: "Ready?"})
	if p.Text != "Question 1: Ready?" {
		t.Fatalf("unexpected text %q", p.Text)
	}
	if len(p.Buttons) != 2 {
		t.Fatalf("expected 2 buttons, got %d", len(p.Buttons))
	}
	if p.Buttons[0] != (Button{Label: "Yes", Data: "Yes"}) || p.Buttons[1] != (Button{Label: "No", Data: "No"}) {
		t.Fatalf("unexpected buttons %+v", p.Buttons)
	}
}

func TestRenderMultipleChoice(t *testing.T) {
	p := Render(2, domain.Question{
		Type:    domain.QuestionMultipleChoice,
		Text:    "Pick",
		Options: []string{"A", "B", "C"},
	})
	if p.Text != "Question 3: Pick" {
		t.Fatalf("unexpected text %q", p.Text)
	}
	if len(p.Buttons) != 3 {
		t.Fatalf("expected 3 buttons, got %d", len(p.Buttons))
	}
	if p.Buttons[2].Label != "3. C" || p.Buttons[2].Data != "2" {
		t.Fatalf("expected 1-based label with 0-based payload, got %+v", p.Buttons[2])
	}
}

func TestRenderFreeTextAndUnknownTypes(t *testing.T) {
	for _, typ := range []domain.QuestionType{domain.QuestionFreeText, "number", ""} {
		p := Render(0, domain.Question{Type: typ, Text: "How many?"})
		if len(p.Buttons) != 0 {
			t.Fatalf("type %q: expected plain text prompt, got buttons %+v", typ, p.Buttons)
		}
	}
}

func TestRenderMultipleChoiceWithoutOptionsFallsBackToText(t *testing.T) {
	p := Render(0, domain.Question{Type: domain.QuestionMultipleChoice, Text: "Pick"})
	if len(p.Buttons) != 0 {
		t.Fatalf("expected no buttons without options, got %+v", p.Buttons)
	}
}
