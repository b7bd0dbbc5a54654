package history

import (
	"io"
	"time"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/workout"
	"github.com/xuri/excelize/v2"
)

// WorkbookFilename is the download name of the spreadsheet export.
const WorkbookFilename = "workout-history.xlsx"

//nolint:gochecknoglobals // column layout.
var workbookColumns = []struct {
	key   string
	width float64
}{
	{key: "history.completed_at", width: 20},
	{key: "history.plan", width: 30},
	{key: "history.day", width: 14},
	{key: "result.focus", width: 20},
	{key: "history.feedback", width: 18},
	{key: "result.exercise", width: 30},
	{key: "result.sets", width: 8},
	{key: "result.reps", width: 10},
	{key: "result.rest", width: 14},
	{key: "result.notes", width: 40},
}

// WriteWorkbook writes entries as an xlsx workbook with one row per exercise.
// Days without exercises still get a row so that every entry is visible.
func WriteWorkbook(w io.Writer, entries []workout.HistoryEntry, lang i18n.Language) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := i18n.Translate(lang, "history.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	//nolint:exhaustruct // defaults.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, "header style")
	}

	for i, col := range workbookColumns {
		var cell string
		if cell, err = excelize.CoordinatesToCellName(i+1, 1); err != nil {
			return errors.Wrap(err, "header cell")
		}
		if err = f.SetCellValue(sheet, cell, i18n.Translate(lang, col.key)); err != nil {
			return errors.Wrap(err, "set header")
		}
		var name string
		if name, err = excelize.ColumnNumberToName(i + 1); err != nil {
			return errors.Wrap(err, "column name")
		}
		if err = f.SetColWidth(sheet, name, name, col.width); err != nil {
			return errors.Wrap(err, "set column width")
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(workbookColumns), 1)
	if err = f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return errors.Wrap(err, "style header")
	}

	row := 2
	for _, e := range entries {
		exercises := e.Day.Exercises
		if len(exercises) == 0 {
			exercises = []workout.Exercise{{}}
		}
		for _, ex := range exercises {
			values := []any{
				e.CompletedAt.Format(time.DateTime),
				e.PlanName,
				e.Day.Label,
				e.Day.Focus,
				e.Feedback,
				ex.Name,
				ex.Sets,
				ex.Reps,
				ex.Rest,
				ex.Notes,
			}
			var cell string
			if cell, err = excelize.CoordinatesToCellName(1, row); err != nil {
				return errors.Wrap(err, "row cell")
			}
			if err = f.SetSheetRow(sheet, cell, &values); err != nil {
				return errors.Wrap(err, "set row")
			}
			row++
		}
	}

	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}
