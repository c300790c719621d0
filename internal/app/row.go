package app

import "time"

const timestampLayout = "2006-01-02 15:04:05"

// BuildRow flattens a finished session into one storage row: the respondent
// identifier, answers in catalog order (empty string where unanswered), and
// the completion timestamp. Pure; persistence happens elsewhere.
func BuildRow(s *Session, catalogSize int, completedAt time.Time) []string {
	row := make([]string, 0, catalogSize+2)
	row = append(row, s.User.Identifier())
	for i := 0; i < catalogSize; i++ {
		row = append(row, s.Answers[i])
	}
	return append(row, completedAt.Format(timestampLayout))
}
