package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alfarhan/hr-fleet-management/internal/employee"
)

type ExcelGenerator struct{}

func NewExcelGenerator() *ExcelGenerator { return &ExcelGenerator{} }

// EmployeeSalaries exports the visible employees with their salary breakdown
// to an xlsx workbook.
func (g *ExcelGenerator) EmployeeSalaries(employees []*employee.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Employees"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Code", "Name", "Job Title", "Status", "Basic Salary", "Housing", "Transport", "Total"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return nil, err
	}

	for i, e := range employees {
		rowNum := i + 2
		values := []interface{}{
			e.EmployeeCode,
			e.Name,
			e.JobTitle,
			e.Status,
			e.BasicSalary.InexactFloat64(),
			e.HousingAllowance.InexactFloat64(),
			e.TransportAllowance.InexactFloat64(),
			e.TotalSalary().InexactFloat64(),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "H", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
