package sheet

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	maxRetries = 15
	maxBackoff = 60 * time.Second
)

var _ Sheet = (*GoogleSheet)(nil)

// GoogleSheet serves the grid contract from one worksheet of a Google
// spreadsheet. Dimensions are cached from the spreadsheet metadata and
// maintained locally across structural calls; an external actor resizing
// the sheet concurrently is not supported.
type GoogleSheet struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	sheetID       int64
	rows          int
	cols          int
}

func NewGoogleSheet(jsonPath, spreadsheetID, sheetName string) (*GoogleSheet, error) {
	ctx := context.Background()
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(jsonPath))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	g := &GoogleSheet{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
	if err := g.loadProperties(); err != nil {
		return nil, err
	}
	return g, nil
}

// withRetry runs call, backing off exponentially on Google rate-limit
// responses (429 and quota 403s).
func withRetry(call func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = call()
		if err == nil {
			return nil
		}
		if gErr, ok := err.(*googleapi.Error); ok && (gErr.Code == 429 || gErr.Code == 403) {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			log.Printf("Rate limited by Google Sheets API, retrying in %v...", backoff)
			time.Sleep(backoff)
			continue
		}
		return err
	}
	return fmt.Errorf("giving up after %d retries: %w", maxRetries, err)
}

func (g *GoogleSheet) loadProperties() error {
	var ss *sheets.Spreadsheet
	err := withRetry(func() error {
		var err error
		ss, err = g.service.Spreadsheets.Get(g.spreadsheetID).Context(context.Background()).Do()
		return err
	})
	if err != nil {
		return err
	}
	for _, sh := range ss.Sheets {
		if sh.Properties.Title == g.sheetName {
			g.sheetID = sh.Properties.SheetId
			g.rows = int(sh.Properties.GridProperties.RowCount)
			g.cols = int(sh.Properties.GridProperties.ColumnCount)
			return nil
		}
	}
	return fmt.Errorf("sheet %q not found in spreadsheet %s", g.sheetName, g.spreadsheetID)
}

func (g *GoogleSheet) batchUpdate(req *sheets.BatchUpdateSpreadsheetRequest) error {
	return withRetry(func() error {
		_, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetID, req).
			Context(context.Background()).Do()
		return err
	})
}

// colName converts a 1-based column number to its A1 letters.
func colName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}

func (g *GoogleSheet) rangeName(topRow, leftCol, bottomRow, rightCol int) string {
	return fmt.Sprintf("%s!%s%d:%s%d",
		g.sheetName, colName(leftCol), topRow, colName(rightCol), bottomRow)
}

func (g *GoogleSheet) ReadCell(row, col int) (string, error) {
	values, err := g.ReadRange(row, col, row, col)
	if err != nil {
		return "", err
	}
	return values[0], nil
}

func (g *GoogleSheet) WriteCell(row, col int, value string) error {
	return withRetry(func() error {
		_, err := g.service.Spreadsheets.Values.Update(
			g.spreadsheetID,
			g.rangeName(row, col, row, col),
			&sheets.ValueRange{Values: [][]interface{}{{value}}},
		).ValueInputOption("RAW").Context(context.Background()).Do()
		return err
	})
}

func (g *GoogleSheet) ReadRange(topRow, leftCol, bottomRow, rightCol int) ([]string, error) {
	var resp *sheets.ValueRange
	err := withRetry(func() error {
		var err error
		resp, err = g.service.Spreadsheets.Values.Get(
			g.spreadsheetID,
			g.rangeName(topRow, leftCol, bottomRow, rightCol),
		).Context(context.Background()).Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	// The API omits trailing empty cells and rows; pad the rectangle out.
	height := bottomRow - topRow + 1
	width := rightCol - leftCol + 1
	out := make([]string, 0, height*width)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			val := ""
			if r < len(resp.Values) && c < len(resp.Values[r]) {
				val = fmt.Sprint(resp.Values[r][c])
			}
			out = append(out, val)
		}
	}
	return out, nil
}

func (g *GoogleSheet) WriteRange(cells []Cell) error {
	if len(cells) == 0 {
		return nil
	}
	data := make([]*sheets.ValueRange, len(cells))
	for i, c := range cells {
		data[i] = &sheets.ValueRange{
			Range:  g.rangeName(c.Row, c.Col, c.Row, c.Col),
			Values: [][]interface{}{{c.Value}},
		}
	}
	return withRetry(func() error {
		_, err := g.service.Spreadsheets.Values.BatchUpdate(g.spreadsheetID,
			&sheets.BatchUpdateValuesRequest{
				ValueInputOption: "RAW",
				Data:             data,
			}).Context(context.Background()).Do()
		return err
	})
}

func (g *GoogleSheet) InsertRow(values []string, index int) error {
	err := g.batchUpdate(&sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			InsertDimension: &sheets.InsertDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    g.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(index - 1),
					EndIndex:   int64(index),
				},
			},
		}},
	})
	if err != nil {
		return err
	}
	g.rows++

	if len(values) > g.cols {
		values = values[:g.cols]
	}
	cells := make([]Cell, 0, len(values))
	for i, v := range values {
		cells = append(cells, Cell{Row: index, Col: i + 1, Value: v})
	}
	return g.WriteRange(cells)
}

func (g *GoogleSheet) AppendRows(count int) error {
	err := g.batchUpdate(&sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AppendDimension: &sheets.AppendDimensionRequest{
				SheetId:   g.sheetID,
				Dimension: "ROWS",
				Length:    int64(count),
			},
		}},
	})
	if err != nil {
		return err
	}
	g.rows += count
	return nil
}

func (g *GoogleSheet) AddColumns(count int) error {
	err := g.batchUpdate(&sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AppendDimension: &sheets.AppendDimensionRequest{
				SheetId:   g.sheetID,
				Dimension: "COLUMNS",
				Length:    int64(count),
			},
		}},
	})
	if err != nil {
		return err
	}
	g.cols += count
	return nil
}

func (g *GoogleSheet) Resize(rows, cols int) error {
	err := g.batchUpdate(&sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: g.sheetID,
					GridProperties: &sheets.GridProperties{
						RowCount:    int64(rows),
						ColumnCount: int64(cols),
					},
				},
				Fields: "gridProperties.rowCount,gridProperties.columnCount",
			},
		}},
	})
	if err != nil {
		return err
	}
	g.rows, g.cols = rows, cols
	return nil
}

func (g *GoogleSheet) RowCount() int { return g.rows }

func (g *GoogleSheet) ColCount() int { return g.cols }
