package edgar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
)

func TestClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entity/lookup", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "0000320193", req["cik"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"valid": true,
			"entity": map[string]any{
				"cik":  "0000320193",
				"name": "Example Corp",
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.Lookup(context.Background(), "0000320193")

	require.NoError(t, err)
	assert.True(t, res.Valid)
	require.NotNil(t, res.Entity)
	assert.Equal(t, "Example Corp", res.Entity.Name)
}

func TestClient_Lookup_InvalidIdentifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"valid":   false,
			"message": "unknown CIK",
		})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Lookup(context.Background(), "0000000000")

	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "unknown CIK", res.Message)
	assert.Nil(t, res.Entity)
}

func TestClient_Validate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filings/validate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "4", req["formType"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"valid":  false,
			"errors": []string{"EDGAR: issuer CIK is not registered."},
		})
	}))
	defer srv.Close()

	record := models.NewFilingRecord(models.FormType4)
	res, err := NewClient(srv.URL).Validate(context.Background(), models.FormType4, record)

	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"EDGAR: issuer CIK is not registered."}, res.Errors)
}

func TestClient_Submit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filings/submit", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"accepted": true})
	}))
	defer srv.Close()

	record := models.NewFilingRecord(models.FormType4)
	err := NewClient(srv.URL).Submit(context.Background(), models.FormType4, record)

	assert.NoError(t, err)
}

func TestClient_Submit_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accepted": false,
			"message":  "filing window closed",
		})
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Submit(context.Background(), models.FormType4, models.NewFilingRecord(models.FormType4))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "filing window closed")
}

func TestClient_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Lookup(context.Background(), "0000320193")

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewClient(srv.URL).Lookup(context.Background(), "0000320193")

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestClient_ClientErrorIsNotUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Lookup(context.Background(), "0000320193")

	require.Error(t, err)
	assert.NotErrorIs(t, err, sentinel.ErrUnavailable)
}
