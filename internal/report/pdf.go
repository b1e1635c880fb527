// Package report renders company data as downloadable PDF and Excel files.
// Rows are always gathered through the same scoped services the JSON API
// uses, so a report can never show more than its requester may see.
package report

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/alfarhan/hr-fleet-management/internal/document"
	"github.com/alfarhan/hr-fleet-management/internal/employee"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 78, Blue: 139}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

type PDFGenerator struct{}

func NewPDFGenerator() *PDFGenerator { return &PDFGenerator{} }

func (g *PDFGenerator) newDocument(title, companyName string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(companyName, true).
		Build()

	return maroto.New(cfg)
}

func headerRows(title, companyName string) []core.Row {
	return []core.Row{
		row.New(14).Add(
			col.New(8).Add(
				text.New(companyName, props.Text{
					Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
				}),
				text.New(title, props.Text{Size: 10, Top: 9, Color: colorGray}),
			),
			col.New(4).Add(
				text.New(time.Now().Format("2006-01-02"), props.Text{
					Size: 9, Align: align.Right, Top: 1, Color: colorGray,
				}),
			),
		),
		line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

func tableHeader(labels []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		cols = append(cols, col.New(widths[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		})))
	}
	return row.New(8).Add(cols...)
}

func tableRow(values []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(widths[i]).Add(text.New(v, props.Text{
			Size: 8, Top: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

// EmployeeRoster renders the visible employees as a roster table.
func (g *PDFGenerator) EmployeeRoster(companyName string, employees []*employee.Employee) ([]byte, error) {
	m := g.newDocument("Employee Roster", companyName)
	m.AddRows(headerRows("Employee Roster", companyName)...)

	widths := []int{2, 3, 3, 2, 2}
	m.AddRows(tableHeader([]string{"Code", "Name", "Job Title", "Department", "Status"}, widths))

	for _, e := range employees {
		dept := "-"
		if e.DepartmentID != nil {
			dept = fmt.Sprintf("#%d", *e.DepartmentID)
		}
		m.AddRows(tableRow([]string{e.EmployeeCode, e.Name, e.JobTitle, dept, e.Status}, widths))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New(
		fmt.Sprintf("Total employees: %d", len(employees)),
		props.Text{Size: 8, Color: colorGray, Top: 1},
	))))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generate roster pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// ExpiringDocuments renders the documents inside the warning window.
func (g *PDFGenerator) ExpiringDocuments(companyName string, windowDays int, documents []*document.Document) ([]byte, error) {
	title := fmt.Sprintf("Expiring Documents (next %d days)", windowDays)
	m := g.newDocument(title, companyName)
	m.AddRows(headerRows(title, companyName)...)

	widths := []int{2, 3, 2, 3, 2}
	m.AddRows(tableHeader([]string{"Type", "Number", "Employee", "Expiry Date", "Status"}, widths))

	for _, d := range documents {
		expiryDate := "-"
		if d.ExpiryDate != nil {
			expiryDate = d.ExpiryDate.Format("2006-01-02")
		}
		m.AddRows(tableRow([]string{
			d.Type,
			d.Number,
			fmt.Sprintf("#%d", d.EmployeeID),
			expiryDate,
			string(d.ExpiryStatus),
		}, widths))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New(
		fmt.Sprintf("Total documents: %d", len(documents)),
		props.Text{Size: 8, Color: colorGray, Top: 1},
	))))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generate expiring documents pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
