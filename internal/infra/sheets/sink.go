package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Sink appends survey rows to a Google Sheets spreadsheet using a service
// account. One row per completed session; a single append attempt, no retry.
type Sink struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetName     string
}

func New(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*Sink, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id not configured")
	}
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}
	return &Sink{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func (s *Sink) AppendRow(ctx context.Context, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	// Appending below A2 keeps the header row intact.
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName+"!A2", &gsheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// EnsureHeader creates the sheet tab when missing and writes the column
// titles when forced or when the existing header does not match. Rewriting
// clears the whole tab first, so force drops previously collected rows.
func (s *Sink) EnsureHeader(ctx context.Context, titles []string, force bool) error {
	sheetID, err := s.ensureTab(ctx)
	if err != nil {
		return err
	}

	current, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName+"!A1:Z1").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if !force && headerMatches(current, titles) {
		return nil
	}

	if _, err := s.svc.Spreadsheets.Values.
		Clear(s.spreadsheetID, s.sheetName+"!A:Z", &gsheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	values := make([]interface{}, len(titles))
	for i, t := range titles {
		values[i] = t
	}
	if _, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, s.sheetName+"!A1", &gsheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	// Bold grey header row.
	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			RepeatCell: &gsheets.RepeatCellRequest{
				Range: &gsheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &gsheets.CellData{
					UserEnteredFormat: &gsheets.CellFormat{
						BackgroundColor: &gsheets.Color{Red: 0.8, Green: 0.8, Blue: 0.8},
						TextFormat:      &gsheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("format header: %w", err)
	}
	return nil
}

// ensureTab finds the configured tab, creating it when absent, and returns
// its sheet id.
func (s *Sink) ensureTab(ctx context.Context) (int64, error) {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.sheetName {
			return sh.Properties.SheetId, nil
		}
	}

	resp, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: s.sheetName},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("create sheet %q: %w", s.sheetName, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("create sheet %q: empty reply", s.sheetName)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

func headerMatches(current *gsheets.ValueRange, titles []string) bool {
	if current == nil || len(current.Values) == 0 {
		return false
	}
	row := current.Values[0]
	if len(row) != len(titles) {
		return false
	}
	for i, cell := range row {
		text, ok := cell.(string)
		if !ok || text != titles[i] {
			return false
		}
	}
	return true
}
