package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("finance", "/finance")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/finance/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUseAppliesMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var order []string
	r.Use(func(c *gin.Context) {
		order = append(order, "middleware")
		c.Next()
	})

	group := NewDomainGroup("projects", "/projects")
	group.GET("", func(c *gin.Context) {
		order = append(order, "handler")
		c.String(http.StatusOK, "ok")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/projects", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"middleware", "handler"}, order)
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("program", "/program")
		assert.Equal(t, "program", g.Name())
		assert.Equal(t, "/program", g.Prefix())
	})

	t.Run("registers routes for each method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("expenses", "/expenses")
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g.GET("", ok).POST("", ok).PUT("/:id", ok).PATCH("/:id", ok).DELETE("/:id", ok)

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		for _, tc := range []struct {
			method string
			path   string
		}{
			{"GET", "/api/v1/expenses"},
			{"POST", "/api/v1/expenses"},
			{"PUT", "/api/v1/expenses/42"},
			{"PATCH", "/api/v1/expenses/42"},
			{"DELETE", "/api/v1/expenses/42"},
		} {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, tc.method)
		}
	})

	t.Run("registers nested subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("donors", "/donors")
		sub := g.Group("fundings", "/:id/fundings")
		sub.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, c.Param("id"))
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/donors/abc/fundings", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc", w.Body.String())
	})

	t.Run("group middleware runs before routes", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("reports", "/reports")
		g.Use(func(c *gin.Context) {
			c.Header("X-Group", "reports")
			c.Next()
		})
		g.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/reports", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "reports", w.Header().Get("X-Group"))
	})
}
