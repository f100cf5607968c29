package admin

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

var userExportHeaders = []string{"UID", "Email", "Display Name", "Role", "Plan", "Status", "Created At", "Quotes Responded"}

// ExportUsers writes an XLSX workbook with a Users sheet and a Summary sheet.
func (a *DefaultAdminService) ExportUsers(ctx context.Context, w io.Writer) error {
	users, err := a.ListUsers(ctx)
	if err != nil {
		return err
	}
	stats, err := a.PlatformStats(ctx)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		created := ""
		if u.CreatedAt != nil {
			created = u.CreatedAt.Format(time.RFC3339)
		}
		rows = append(rows, []interface{}{u.UID, u.Email, u.DisplayName, string(u.Role), u.Plan, u.Status, created, u.QuotesResponded})
	}
	summary := [][]interface{}{
		{"Total Users", stats.TotalUsers},
		{"Vendors", stats.Vendors},
		{"Buyers", stats.Buyers},
		{"Admins", stats.Admins},
		{"Total Quotes", stats.TotalQuotes},
		{"Completed Quotes", stats.CompletedQuotes},
		{"Revenue", stats.Revenue},
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Users"); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeSheet(f, "Users", userExportHeaders, rows); err != nil {
		return err
	}
	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeSheet(f, "Summary", []string{"Metric", "Value"}, summary); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}
