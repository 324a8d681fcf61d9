package export

import (
	"fmt"
	"io"

	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/content"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxDefaultSheet = "Sheet1"
	xlsxLabelWidth   = 22.0
	xlsxValueWidth   = 90.0
)

// XLSX writes r as a two-column sheet: the facts first, then each section as plain text.
func XLSX(out io.Writer, r *Report) (err error) {
	if r == nil {
		return fmt.Errorf("%s: %s", config.ErrXLSXRender, config.ErrNoPrediction)
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: %w", config.ErrXLSXRender, cerr)
		}
	}()

	if err := fillSheet(f, r); err != nil {
		return fmt.Errorf("%s: %w", config.ErrXLSXRender, err)
	}
	if err := f.Write(out); err != nil {
		return fmt.Errorf("%s: %w", config.ErrXLSXRender, err)
	}
	return nil
}

func fillSheet(f *excelize.File, r *Report) error {
	sheet := config.XLSXSheetName
	if err := f.SetSheetName(xlsxDefaultSheet, sheet); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	rows := [][2]string{{config.XLSXHeaderKey, config.XLSXHeaderValue}}
	for _, fact := range r.Facts {
		rows = append(rows, [2]string{fact.Label, fact.Value})
	}
	for _, s := range r.Sections {
		rows = append(rows, [2]string{s.Title, content.PlainText(s.Body)})
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &[]any{row[0], row[1]}); err != nil {
			return err
		}
	}

	last := len(rows)
	if err := f.SetCellStyle(sheet, "A1", "B1", header); err != nil {
		return err
	}
	if last > 1 {
		if err := f.SetCellStyle(sheet, "A2", fmt.Sprintf("B%d", last), wrap); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", xlsxLabelWidth); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", xlsxValueWidth)
}
