package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amani/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindExpenseJSON(t *testing.T, payload any, target any) error {
	t.Helper()
	middleware.RegisterValidations()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(target)
}

func TestExpenseRequestDescriptionCap(t *testing.T) {
	base := map[string]string{
		"project_id":  uuid.NewString(),
		"amount":      "150.00",
		"currency":    "USD",
		"incurred_at": "2026-08-01",
	}

	t.Run("create accepts up to 500 characters", func(t *testing.T) {
		base["description"] = strings.Repeat("a", 500)
		var req CreateExpenseRequest
		assert.NoError(t, bindExpenseJSON(t, base, &req))
	})

	t.Run("create rejects 501 characters", func(t *testing.T) {
		base["description"] = strings.Repeat("a", 501)
		var req CreateExpenseRequest
		assert.Error(t, bindExpenseJSON(t, base, &req))
	})

	t.Run("update rejects 501 characters", func(t *testing.T) {
		base["description"] = strings.Repeat("a", 501)
		var req UpdateExpenseRequest
		assert.Error(t, bindExpenseJSON(t, base, &req))
	})
}
