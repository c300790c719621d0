package app

import (
	"fmt"
	"strconv"

	"survey-bot/internal/domain"
)

// Button is one inline choice attached to a prompt.
type Button struct {
	Label string
	Data  string
}

// Prompt is the outbound shape of a question: text plus optional buttons.
type Prompt struct {
	Text    string
	Buttons []Button
}

// Render maps a question to its prompt shape. Yes/no questions get two
// buttons carrying the literal label; multiple choice gets one button per
// option with the 0-based index as payload; everything else is plain text.
func Render(index int, q domain.Question) Prompt {
	text := fmt.Sprintf("Question %d: %s", index+1, q.Text)
	switch {
	case q.Type == domain.QuestionYesNo:
		return Prompt{Text: text, Buttons: []Button{
			{Label: "Yes", Data: "Yes"},
			{Label: "No", Data: "No"},
		}}
	case q.Type == domain.QuestionMultipleChoice && len(q.Options) > 0:
		buttons := make([]Button, 0, len(q.Options))
		for i, opt := range q.Options {
			buttons = append(buttons, Button{
				Label: fmt.Sprintf("%d. %s", i+1, opt),
				Data:  strconv.Itoa(i),
			})
		}
		return Prompt{Text: text, Buttons: buttons}
	default:
		return Prompt{Text: text}
	}
}
