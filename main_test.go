package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// TestAppBoot wires the whole application with default configuration.
// Without a DATABASE_DSN it runs on the in-memory store and seeds the
// sample catalog, so the public surface is immediately usable.
func TestAppBoot(t *testing.T) {
	application := NewApp()
	assert.NotNil(t, application.Fiber)
	assert.Nil(t, application.DB)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := application.Fiber.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
	resp.Body.Close()

	// Seeded catalog is browsable without a session.
	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err = application.Fiber.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	assert.NotEmpty(t, products)
	resp.Body.Close()

	// Orders are not.
	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	resp, err = application.Fiber.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
