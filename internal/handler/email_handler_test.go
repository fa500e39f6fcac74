package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmate/internal/handler"
)

func TestGetCategoriesListsAssignableLabels(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/emails/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewEmailHandler(nil, e.Logger)
	require.NoError(t, h.GetCategories(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Categories, "Work")
	assert.Contains(t, body.Categories, "Promotions")
	// The fallback label comes last.
	assert.Equal(t, "General", body.Categories[len(body.Categories)-1])
}
