package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"survey-bot/internal/domain"
)

// Catalog is the ordered, immutable question list shared by the whole process.
type Catalog struct {
	questions []domain.Question
}

type catalogFile struct {
	Quiz []domain.Question `json:"quiz"`
}

// Load parses the question file. Entries without a type or text are fatal;
// unknown types only log a warning and are later rendered as free text.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Quiz) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	for i, q := range file.Quiz {
		if q.Type == "" || q.Text == "" {
			return nil, fmt.Errorf("question %d: %w", i+1, domain.ErrInvalidQuestion)
		}
		switch q.Type {
		case domain.QuestionYesNo, domain.QuestionMultipleChoice, domain.QuestionFreeText:
		default:
			log.Printf("catalog: question %d has unsupported type %q, will be asked as free text", i+1, q.Type)
		}
	}
	return &Catalog{questions: file.Quiz}, nil
}

// Question is a bounds-checked lookup by 0-based index.
func (c *Catalog) Question(i int) (domain.Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return domain.Question{}, false
	}
	return c.questions[i], true
}

func (c *Catalog) Len() int {
	return len(c.questions)
}

// Header returns the column titles the response store is expected to carry:
// the respondent, one column per question, and the completion timestamp.
func (c *Catalog) Header() []string {
	header := make([]string, 0, len(c.questions)+2)
	header = append(header, "User")
	for _, q := range c.questions {
		header = append(header, q.Text)
	}
	return append(header, "Timestamp")
}
