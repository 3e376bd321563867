package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/interior-consult/services"
)

type estimateBody struct {
	ID           uint    `json:"id"`
	CustomerName string  `json:"customerName"`
	Title        string  `json:"title"`
	EstimateDate string  `json:"estimateDate"`
	Subtotal     float64 `json:"subtotal"`
	VAT          float64 `json:"vat"`
	Total        float64 `json:"total"`
	Items        []struct {
		Category  string  `json:"category"`
		Unit      string  `json:"unit"`
		Qty       float64 `json:"qty"`
		UnitPrice float64 `json:"unitPrice"`
		Amount    float64 `json:"amount"`
	} `json:"items"`
}

func TestEstimateEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	alpha := env.companyCookie(t, "alpha")

	w := env.do(t, http.MethodPost, "/api/estimates", map[string]interface{}{
		"title": "거실",
		"items": []map[string]interface{}{{"qty": 1, "unitPrice": 1000}},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/estimates", map[string]interface{}{"title": "빈 견적", "items": []interface{}{}}, alpha)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/estimates", `{
		"customerName": "김철수",
		"title": "32평 리모델링",
		"estimateDate": "2026-10-19",
		"items": [
			{"category": "도배", "qty": "2", "unitPrice": "10,000"},
			{"category": "바닥", "unit": "평", "qty": 1, "unitPrice": 5000}
		]
	}`, alpha)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created estimateBody
	decode(t, w, &created)
	assert.Equal(t, float64(25000), created.Subtotal)
	assert.Equal(t, float64(2500), created.VAT)
	assert.Equal(t, float64(27500), created.Total)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "식", created.Items[0].Unit)
	assert.Equal(t, float64(20000), created.Items[0].Amount)

	path := fmt.Sprintf("/api/estimates/%d", created.ID)

	var list []estimateBody
	decode(t, env.do(t, http.MethodGet, "/api/estimates", nil, alpha), &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w = env.do(t, http.MethodGet, "/api/estimates", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, path, nil, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, path+"/export", nil, nil).Code)

	w = env.do(t, http.MethodPatch, path, map[string]interface{}{
		"title": "수정본",
		"items": []map[string]interface{}{{"category": "욕실", "qty": 1, "unitPrice": 3000000}},
	}, alpha)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated estimateBody
	decode(t, w, &updated)
	assert.Equal(t, "수정본", updated.Title)
	assert.Equal(t, "김철수", updated.CustomerName)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, float64(3300000), updated.Total)

	w = env.do(t, http.MethodGet, path+"/export", nil, alpha)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.XLSXContentType, w.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, path, nil, alpha).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, nil, alpha).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, nil, alpha).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/estimates/0", nil, nil).Code)
}

func TestEstimateEndpoints_OtherCompany(t *testing.T) {
	env := setupTestEnv(t)
	alpha := env.companyCookie(t, "alpha")
	beta := env.companyCookie(t, "beta")

	w := env.do(t, http.MethodPost, "/api/estimates", map[string]interface{}{
		"customerName": "Kim",
		"contact":      "010-1234-5678",
		"address":      "Seoul 1-2",
		"items":        []map[string]interface{}{{"qty": 1, "unitPrice": 1000}},
	}, alpha)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created estimateBody
	decode(t, w, &created)
	path := fmt.Sprintf("/api/estimates/%d", created.ID)

	var list []estimateBody
	decode(t, env.do(t, http.MethodGet, "/api/estimates", nil, beta), &list)
	assert.Empty(t, list)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, nil, beta).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path+"/export", nil, beta).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPatch, path, map[string]string{"title": "변경"}, beta).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, nil, beta).Code)

	w = env.do(t, http.MethodGet, path, nil, alpha)
	require.Equal(t, http.StatusOK, w.Code)
	var kept estimateBody
	decode(t, w, &kept)
	assert.Equal(t, "Kim", kept.CustomerName)
	assert.Empty(t, kept.Title)
}
