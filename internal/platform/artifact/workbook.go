package artifact

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	// WidthSampleRows bounds how many data rows are measured per column.
	WidthSampleRows = 50
	// DefaultMinWidth is the width floor for columns without an explicit one.
	DefaultMinWidth = 6
	widthPadding    = 2

	headerFill  = "1F2937"
	headerFont  = "FFFFFF"
	headerRowHt = 20
)

// WorkbookBuilder writes a single styled worksheet: a header row followed by
// data rows.
type WorkbookBuilder struct {
	fileName  string
	sheet     string
	header    []string
	rows      [][]any
	minWidths map[string]float64
}

// NewWorkbook creates a builder for one sheet with the given header.
func NewWorkbook(fileName, sheet string, header []string) *WorkbookBuilder {
	return &WorkbookBuilder{
		fileName:  fileName,
		sheet:     sheet,
		header:    header,
		minWidths: map[string]float64{},
	}
}

// MinWidth sets the width floor for the named header column.
func (b *WorkbookBuilder) MinWidth(column string, width float64) *WorkbookBuilder {
	b.minWidths[column] = width
	return b
}

// AddRow queues a data row. Rows shorter than the header leave trailing
// cells empty.
func (b *WorkbookBuilder) AddRow(values ...any) {
	b.rows = append(b.rows, values)
}

// Rows returns the queued data rows.
func (b *WorkbookBuilder) Rows() [][]any { return b.rows }

// ColumnWidths returns the width of each header column, measured over the
// header and at most WidthSampleRows data rows.
func (b *WorkbookBuilder) ColumnWidths() []float64 {
	sample := len(b.rows)
	if sample > WidthSampleRows {
		sample = WidthSampleRows
	}

	widths := make([]float64, len(b.header))
	for i, h := range b.header {
		maxLen := utf8.RuneCountInString(h)
		for _, row := range b.rows[:sample] {
			if i >= len(row) || row[i] == nil {
				continue
			}
			if n := utf8.RuneCountInString(fmt.Sprint(row[i])); n > maxLen {
				maxLen = n
			}
		}
		floor, ok := b.minWidths[h]
		if !ok {
			floor = DefaultMinWidth
		}
		widths[i] = max(float64(maxLen+widthPadding), floor)
	}
	return widths
}

// Build renders the workbook to XLSX bytes.
func (b *WorkbookBuilder) Build() (*Artifact, error) {
	if b.fileName == "" {
		return nil, ErrEmptyFileName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), b.sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(b.header))
	for i, h := range b.header {
		header[i] = h
	}
	if err := f.SetSheetRow(b.sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range b.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(b.sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := b.styleHeader(f); err != nil {
		return nil, err
	}

	for i, w := range b.ColumnWidths() {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(b.sheet, col, col, w); err != nil {
			return nil, fmt.Errorf("set width %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return &Artifact{
		FileName:    b.fileName,
		Description: "Excel Spreadsheet",
		MIMEType:    MIMEXLSX,
		Extensions:  []string{".xlsx"},
		Data:        buf.Bytes(),
	}, nil
}

func (b *WorkbookBuilder) styleHeader(f *excelize.File) error {
	if len(b.header) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(b.header), 1)
	if err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFont},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(b.sheet, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if err := f.SetRowHeight(b.sheet, 1, headerRowHt); err != nil {
		return fmt.Errorf("set header height: %w", err)
	}
	if err := f.AutoFilter(b.sheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("set auto filter: %w", err)
	}
	if err := f.SetPanes(b.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	return nil
}
