package api

import (
	"bytes"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardrobeapp/wardrobe-server/internal/http/response"
	"github.com/wardrobeapp/wardrobe-server/internal/rules"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
	"github.com/wardrobeapp/wardrobe-server/internal/store/sqlite"
	"github.com/wardrobeapp/wardrobe-server/internal/validation"
)

// setupTestServer wires a full server against a temporary store with two
// known dev tokens.
func setupTestServer(t *testing.T) (*Server, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "wardrobe-api-test-*")
	require.NoError(t, err)

	s, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validation.New()
	evaluator := rules.NewEvaluator(s, logger)

	auth := NewStaticAuthenticator(map[string]string{
		"token-1": "user-1",
		"token-2": "user-2",
	})

	server := NewServer(
		auth,
		service.NewGarmentService(s, v, logger),
		service.NewTagService(s, v, logger),
		service.NewCollectionService(s, evaluator, v, logger),
		logger,
	)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return server, cleanup
}

// doJSON performs an authenticated JSON request against the server.
func doJSON(t *testing.T, server *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.MarshalWrite(&buf, body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data    jsontext.Value `json:"data"`
		Error   string         `json:"error"`
		Success bool           `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "expected success envelope, got error: %s", envelope.Error)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestRequireAuth(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := doJSON(t, server, http.MethodGet, "/api/v1/garments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, server, http.MethodGet, "/api/v1/garments", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, server, http.MethodGet, "/api/v1/garments", "token-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := doJSON(t, server, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGarmentLifecycle(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := doJSON(t, server, http.MethodPost, "/api/v1/garments", "token-1", service.CreateGarmentRequest{
		Name:     "Denim jacket",
		Category: "Jackets",
		Color:    "Blue",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeData(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "CLEAN", created.Status)

	// Another user's token cannot see it.
	w = doJSON(t, server, http.MethodGet, "/api/v1/garments/"+created.ID, "token-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, server, http.MethodPatch, "/api/v1/garments/"+created.ID+"/status", "token-1", UpdateStatusRequest{
		Status: "DIRTY",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodDelete, "/api/v1/garments/"+created.ID, "token-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateGarment_ValidationEnvelope(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := doJSON(t, server, http.MethodPost, "/api/v1/garments", "token-1", service.CreateGarmentRequest{
		Category: "Jackets",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "validation failed", envelope.Error)
	assert.NotNil(t, envelope.Details)
}

func TestSmartCollectionOverHTTP(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := doJSON(t, server, http.MethodPost, "/api/v1/garments", "token-1", service.CreateGarmentRequest{
		Name:     "Denim jacket",
		Category: "Jackets",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var jacket struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &jacket)

	w = doJSON(t, server, http.MethodPost, "/api/v1/collections", "token-1", service.CreateCollectionRequest{
		Name:              "Jackets",
		IsSmartCollection: true,
		Rules: []service.RuleRequest{
			{Field: "category", Operator: "EQUALS", Value: "Jackets"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var coll struct {
		ID         string   `json:"id"`
		GarmentIDs []string `json:"garment_ids"`
	}
	decodeData(t, w, &coll)
	assert.Equal(t, []string{jacket.ID}, coll.GarmentIDs)

	// Replace the rules over HTTP; membership follows.
	w = doJSON(t, server, http.MethodPut, "/api/v1/collections/"+coll.ID+"/rules", "token-1", SetRulesRequest{
		Rules: []service.RuleRequest{
			{Field: "category", Operator: "EQUALS", Value: "Shirts"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &coll)
	assert.Empty(t, coll.GarmentIDs)

	// Unknown rule field is rejected with a validation envelope.
	w = doJSON(t, server, http.MethodPut, "/api/v1/collections/"+coll.ID+"/rules", "token-1", SetRulesRequest{
		Rules: []service.RuleRequest{
			{Field: "name", Operator: "EQUALS", Value: "x"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Manual edits on a smart collection are rejected.
	w = doJSON(t, server, http.MethodPost, "/api/v1/collections/"+coll.ID+"/garments", "token-1", AddGarmentsRequest{
		GarmentIDs: []string{jacket.ID},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Refresh after inventory changes.
	w = doJSON(t, server, http.MethodPost, "/api/v1/garments", "token-1", service.CreateGarmentRequest{
		Name:     "Oxford",
		Category: "Shirts",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/collections/"+coll.ID+"/refresh", "token-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &coll)
	assert.Len(t, coll.GarmentIDs, 1)
}

func TestManualCollectionOverHTTP(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := doJSON(t, server, http.MethodPost, "/api/v1/garments", "token-1", service.CreateGarmentRequest{
		Name:     "Tee",
		Category: "Shirts",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var tee struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &tee)

	w = doJSON(t, server, http.MethodPost, "/api/v1/collections", "token-1", service.CreateCollectionRequest{
		Name: "Weekend",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var coll struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &coll)

	w = doJSON(t, server, http.MethodPost, "/api/v1/collections/"+coll.ID+"/garments", "token-1", AddGarmentsRequest{
		GarmentIDs: []string{tee.ID},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		GarmentIDs []string `json:"garment_ids"`
	}
	decodeData(t, w, &updated)
	assert.Equal(t, []string{tee.ID}, updated.GarmentIDs)

	w = doJSON(t, server, http.MethodDelete, "/api/v1/collections/"+coll.ID+"/garments/"+tee.ID, "token-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &updated)
	assert.Empty(t, updated.GarmentIDs)
}
