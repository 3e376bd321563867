package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/utils"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var consultationExportHeader = []string{
	"번호", "고객명", "연락처", "지역", "주소", "평수", "진행상태", "담당자", "상담일시", "시공범위", "메모", "등록일",
}

var estimateItemHeader = []string{"구분", "규격", "단위", "수량", "단가", "금액", "비고"}

func newWorkbook(sheet string) (*excelize.File, int, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("rename sheet: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("create header style: %w", err)
	}
	return f, style, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toBytes(f *excelize.File) ([]byte, error) {
	defer f.Close()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportConsultations renders consultations as an xlsx workbook with times
// shown in loc.
func ExportConsultations(consultations []models.Consultation, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}
	const sheet = "상담목록"
	f, headerStyle, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(consultationExportHeader))
	for i, h := range consultationExportHeader {
		header[i] = h
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		f.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(consultationExportHeader))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, c := range consultations {
		consultedAt := ""
		if c.ConsultedAt != nil {
			consultedAt = c.ConsultedAt.In(loc).Format("2006-01-02 15:04")
		}
		row := []interface{}{
			c.ID, c.CustomerName, c.Contact, c.Region, c.Address, c.Pyung, c.Status, c.Pic,
			consultedAt, strings.Join(c.Scope, ", "), c.Note, c.CreatedAt.In(loc).Format("2006-01-02"),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return toBytes(f)
}

// ExportEstimate renders one estimate as a quote sheet with the derived totals.
func ExportEstimate(e models.Estimate) ([]byte, error) {
	const sheet = "견적서"
	f, headerStyle, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}

	meta := [][]interface{}{
		{"견적명", e.Title},
		{"고객명", e.CustomerName},
		{"연락처", e.Contact},
		{"주소", e.Address},
		{"견적일", e.EstimateDate},
		{"비고", e.Note},
	}
	row := 1
	for _, m := range meta {
		if err := writeRow(f, sheet, row, m); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	row++
	header := make([]interface{}, len(estimateItemHeader))
	for i, h := range estimateItemHeader {
		header[i] = h
	}
	if err := writeRow(f, sheet, row, header); err != nil {
		f.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(estimateItemHeader))
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	row++

	for _, it := range e.Items {
		values := []interface{}{
			it.Category, it.Spec, it.Unit,
			it.Qty.InexactFloat64(), it.UnitPrice.InexactFloat64(), it.Amount().InexactFloat64(),
			it.Note,
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	totals := ComputeTotals(e.Items)
	row++
	summary := [][]interface{}{
		{"공급가액", utils.FormatWon(totals.Subtotal)},
		{"부가세", utils.FormatWon(totals.VAT)},
		{"합계", utils.FormatWon(totals.Total)},
	}
	for _, s := range summary {
		if err := writeRow(f, sheet, row, s); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	return toBytes(f)
}
