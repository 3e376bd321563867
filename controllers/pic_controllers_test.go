package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPicEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	alpha := env.companyCookie(t, "alpha")
	beta := env.companyCookie(t, "beta")

	w := env.do(t, http.MethodPost, "/api/company/pics", map[string]string{"name": "김실장"}, alpha)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var pic struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	decode(t, w, &pic)
	assert.Equal(t, "김실장", pic.Name)

	w = env.do(t, http.MethodPost, "/api/company/pics", map[string]string{"name": "김실장"}, alpha)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "이미 등록된 담당자입니다.", errorMessage(t, w))

	w = env.do(t, http.MethodPost, "/api/company/pics", map[string]string{"name": ""}, alpha)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/company/pics", map[string]string{"name": "김실장"}, beta)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/company/pics", nil, nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	path := fmt.Sprintf("/api/company/pics/%d", pic.ID)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, nil, beta).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, path, nil, alpha).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, nil, alpha).Code)

	w = env.do(t, http.MethodGet, "/api/company/pics", nil, alpha)
	assert.JSONEq(t, `[]`, w.Body.String())
}
