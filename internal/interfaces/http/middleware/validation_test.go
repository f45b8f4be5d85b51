package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidationsDecimal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidations())

	type payload struct {
		Amount string `json:"amount" binding:"required,decimal"`
	}

	engine := gin.New()
	engine.POST("/", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	cases := []struct {
		body string
		want int
	}{
		{`{"amount":"150.00"}`, http.StatusOK},
		{`{"amount":"-3.5"}`, http.StatusOK},
		{`{"amount":"abc"}`, http.StatusBadRequest},
		{`{"amount":"12.3.4"}`, http.StatusBadRequest},
		{`{}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tc.body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "body %s", tc.body)
	}
}
