package providers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/donations", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "GET /donations", routes[0].Url)
}

func TestRouterProvider_PostAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/donations", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "POST /donations", routes[0].Url)
}

func TestRouterProvider_PutAndDeleteWithWildcard(t *testing.T) {
	rp := NewRouterProvider()
	rp.Put("/donations/{id}", dummyHandler())
	rp.Delete("/donations/{id}", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "PUT /donations/{id}", routes[0].Url)
	assert.Equal(t, "DELETE /donations/{id}", routes[1].Url)
}

func TestRouterProvider_MultipleRoutes(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler())
	rp.Post("/b", dummyHandler())
	rp.Get("/c", dummyHandler())

	routes := rp.GetRoutes()
	assert.Len(t, routes, 3)
}

func TestRouterProvider_PatternsRegisterOnServeMux(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/donations", dummyHandler())
	rp.Post("/donations", dummyHandler())
	rp.Put("/donations/{id}", dummyHandler())

	mux := http.NewServeMux()
	assert.NotPanics(t, func() {
		for _, route := range rp.GetRoutes() {
			mux.Handle(route.Url, route.Handler)
		}
	})
}
