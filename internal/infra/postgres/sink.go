package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Sink stores survey rows in Postgres as an alternative to Google Sheets.
// The row contract stays the same: first cell is the respondent, the last is
// the completion timestamp, everything in between an answer per question.
type Sink struct {
	db *bun.DB
}

type responseRow struct {
	bun.BaseModel `bun:"table:survey_responses"`

	ID          int64    `bun:"id,pk,autoincrement"`
	Respondent  string   `bun:"respondent,notnull"`
	Answers     []string `bun:"answers,array"`
	SubmittedAt string   `bun:"submitted_at,notnull"`
}

type headerColumn struct {
	bun.BaseModel `bun:"table:survey_columns"`

	Position int    `bun:"position,pk"`
	Title    string `bun:"title,notnull"`
}

func New(url string) (*Sink, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres url not configured")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(url)))
	return &Sink{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

func (s *Sink) AppendRow(ctx context.Context, cells []string) error {
	if len(cells) < 2 {
		return fmt.Errorf("row needs at least respondent and timestamp, got %d cells", len(cells))
	}
	row := responseRow{
		Respondent:  cells[0],
		Answers:     cells[1 : len(cells)-1],
		SubmittedAt: cells[len(cells)-1],
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

// EnsureHeader creates the response tables and records the column titles.
// Force drops both tables first, discarding collected rows, mirroring what a
// forced header rewrite does on the spreadsheet side.
func (s *Sink) EnsureHeader(ctx context.Context, titles []string, force bool) error {
	models := []interface{}{(*responseRow)(nil), (*headerColumn)(nil)}
	if force {
		for _, m := range models {
			if _, err := s.db.NewDropTable().Model(m).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	if _, err := s.db.NewDelete().Model((*headerColumn)(nil)).Where("TRUE").Exec(ctx); err != nil {
		return fmt.Errorf("reset columns: %w", err)
	}
	columns := make([]headerColumn, 0, len(titles))
	for i, title := range titles {
		columns = append(columns, headerColumn{Position: i, Title: title})
	}
	if _, err := s.db.NewInsert().Model(&columns).Exec(ctx); err != nil {
		return fmt.Errorf("store columns: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	return s.db.Close()
}
