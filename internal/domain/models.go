package domain

import "strconv"

// QuestionType distinguishes how a question is asked and answered.
type QuestionType string

const (
	QuestionYesNo          QuestionType = "yes_no"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFreeText       QuestionType = "free_text"
)

// Question is one entry of the survey catalog.
type Question struct {
	Type    QuestionType `json:"type"`
	Text    string       `json:"question"`
	Options []string     `json:"options,omitempty"`
}

// User identifies the chat participant answering the survey.
type User struct {
	ID       int64
	Username string
}

// Identifier is the value written into the first row cell: the handle when
// the user has one, otherwise a textual form of the numeric id.
func (u User) Identifier() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return "id:" + strconv.FormatInt(u.ID, 10)
}
