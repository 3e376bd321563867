package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yeremiapane/interior-consult/models"
	"gorm.io/datatypes"
)

func TestExportEstimate(t *testing.T) {
	e := models.Estimate{
		ID:           7,
		Title:        "거실 리모델링",
		CustomerName: "김철수",
		EstimateDate: "2026-10-19",
		Items: []models.EstimateItem{
			{Category: "도배", Unit: "식", Qty: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10000)},
			{Category: "바닥", Unit: "평", Qty: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5000)},
		},
	}

	data, err := ExportEstimate(e)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("견적서")
	require.NoError(t, err)

	assert.Equal(t, []string{"견적명", "거실 리모델링"}, rows[0])
	assert.Equal(t, "구분", rows[7][0])
	assert.Equal(t, "도배", rows[8][0])
	assert.Equal(t, "20000", rows[8][5])
	assert.Equal(t, []string{"합계", "27,500원"}, rows[len(rows)-1])
}

func TestExportConsultations(t *testing.T) {
	// Drivers may hand back timestamps in UTC.
	at := time.Date(2026, 10, 20, 5, 0, 0, 0, time.UTC)
	created := time.Date(2026, 10, 18, 16, 30, 0, 0, time.UTC)
	data, err := ExportConsultations([]models.Consultation{
		{ID: 1, CustomerName: "이영희", Contact: "010", Status: models.StatusReceived, ConsultedAt: &at, Scope: datatypes.JSONSlice[string]{"도배", "바닥"}, CreatedAt: created},
		{ID: 2, CustomerName: "박민수", Contact: "011", Status: "계약"},
	}, kst)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("상담목록")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, consultationExportHeader, rows[0])
	assert.Equal(t, "이영희", rows[1][1])
	assert.Equal(t, "2026-10-20 14:00", rows[1][8])
	assert.Equal(t, "도배, 바닥", rows[1][9])
	assert.Equal(t, "2026-10-19", rows[1][11])
	assert.Equal(t, "계약", rows[2][6])
}
