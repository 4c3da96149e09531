// Package export renders dashboard views as Excel workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"docflow/internal/domain"
)

const deadlineFormat = "2006-01-02"

// WriteDashboardWorkbook renders the dashboard as an .xlsx workbook with one
// sheet per section.
func WriteDashboardWorkbook(d *domain.Dashboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeStatusSheet(f, d); err != nil {
		return nil, fmt.Errorf("export.WriteDashboardWorkbook: %w", err)
	}
	if err := writeDepartmentSheet(f, d.ByDepartment); err != nil {
		return nil, fmt.Errorf("export.WriteDashboardWorkbook: %w", err)
	}
	if err := writeDocumentSheet(f, "Overdue", d.Overdue); err != nil {
		return nil, fmt.Errorf("export.WriteDashboardWorkbook: %w", err)
	}
	if err := writeDocumentSheet(f, "Upcoming", d.Upcoming); err != nil {
		return nil, fmt.Errorf("export.WriteDashboardWorkbook: %w", err)
	}

	// Drop the default sheet created by excelize.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export.WriteDashboardWorkbook: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export.WriteDashboardWorkbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeStatusSheet(f *excelize.File, d *domain.Dashboard) error {
	const sheet = "By Status"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, "Status", "Count"); err != nil {
		return err
	}
	row := 2
	for _, c := range d.ByStatus {
		if err := setRow(f, sheet, row, c.Status.DisplayName(), c.Count); err != nil {
			return err
		}
		row++
	}
	return setRow(f, sheet, row+1, "Total", d.TotalDocuments)
}

func writeDepartmentSheet(f *excelize.File, counts []domain.DepartmentCount) error {
	const sheet = "By Department"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, "Department", "Documents"); err != nil {
		return err
	}
	for i, c := range counts {
		if err := setRow(f, sheet, i+2, c.DepartmentName, c.Count); err != nil {
			return err
		}
	}
	return nil
}

func writeDocumentSheet(f *excelize.File, sheet string, docs []domain.Document) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, "Number", "Title", "Kind", "Status", "Deadline"); err != nil {
		return err
	}
	for i, doc := range docs {
		deadline := ""
		if doc.ProcessDeadline != nil {
			deadline = doc.ProcessDeadline.Format(deadlineFormat)
		}
		err := setRow(f, sheet, i+2,
			doc.DocumentNumber, doc.Title, string(doc.Kind), doc.Status.DisplayName(), deadline)
		if err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
