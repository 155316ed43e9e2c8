package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"medguide/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSymptomCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/symptom-check", r.URL.Path)
		var req service.SymptomCheckRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "fever", req.Symptoms)
		require.NotNil(t, req.Age)
		assert.Equal(t, 30, *req.Age)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predicted_diseases":["Common Cold","Flu","Malaria"],"recommendations":"Please consult a healthcare professional for proper diagnosis"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zap.NewNop())
	age := 30
	resp, err := c.SymptomCheck(context.Background(), service.SymptomCheckRequest{Symptoms: "fever", Age: &age})
	require.NoError(t, err)
	assert.Equal(t, []string{"Common Cold", "Flu", "Malaria"}, resp.PredictedDiseases)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","database":"sqlite"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zap.NewNop())
	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "ok", "database": "sqlite"}, h)
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-1,"type":"error","message":"invalid input: disease is required","result":null}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zap.NewNop())
	_, err := c.Recommend(context.Background(), service.RecommendationRequest{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid input: disease is required", apiErr.Message)
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Paracetamol","generic_name":"Acetaminophen","description":"d","category":"Analgesic"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zap.NewNop())
	meds, err := c.ListMedicines(context.Background())
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "Paracetamol", meds[0].Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPostIsNotRetriedOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zap.NewNop())
	_, err := c.SymptomCheck(context.Background(), service.SymptomCheckRequest{Symptoms: "fever"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
