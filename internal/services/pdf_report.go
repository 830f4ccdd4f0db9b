package services

import (
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

var (
	pdfTaskHeader = []string{"Task", "Type", "Project", "Date", "Start", "End", "Duration", "Status"}
	pdfTaskGrid   = []uint{3, 1, 2, 2, 1, 1, 1, 1}
	pdfStatsGrid  = []uint{8, 4}
	pdfStripe     = &color.Color{Red: 240, Green: 240, Blue: 240}
)

// pdfReport is the content of a printable task report. Rows use the workbook column order.
type pdfReport struct {
	Title      string
	Period     string
	Rows       [][]string
	Statistics [][]string
}

func renderPDFReport(report pdfReport) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(15, 10, 15)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(report.Title, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(report.Period, props.Text{
					Top:   2,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  11,
				})
			})
		})
	})

	rows := make([][]string, len(report.Rows))
	for i, row := range report.Rows {
		// Description is left out to keep the table on one page width.
		rows[i] = append([]string{row[0]}, row[2:]...)
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"No tasks in this period", "", "", "", "", "", "", ""})
	}
	m.TableList(pdfTaskHeader, rows, tableProps(pdfTaskGrid, 8))

	if len(report.Statistics) > 0 {
		m.Row(12, func() {
			m.Col(12, func() {
				m.Text(SheetStatistics, props.Text{
					Top:   5,
					Style: consts.Bold,
					Size:  12,
				})
			})
		})
		m.TableList(statisticsHeader, report.Statistics, tableProps(pdfStatsGrid, 10))
	}

	buf, err := m.Output()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func tableProps(grid []uint, size float64) props.TableList {
	return props.TableList{
		HeaderProp: props.TableListContent{
			Size:      size,
			GridSizes: grid,
		},
		ContentProp: props.TableListContent{
			Size:      size,
			GridSizes: grid,
		},
		Align:                consts.Left,
		AlternatedBackground: pdfStripe,
		HeaderContentSpace:   1,
		Line:                 false,
	}
}
