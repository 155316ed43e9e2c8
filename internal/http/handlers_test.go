package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"medguide/internal/domain"
	"medguide/internal/repository"
	"medguide/internal/service"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	store   *repository.MemoryStore
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	ms := repository.NewMemoryStore()
	_, err := ms.CreateMedicine(ctx, &domain.Medicine{
		Name:            "Paracetamol",
		GenericName:     "Acetaminophen",
		Description:     "Pain reliever and fever reducer",
		DosageForms:     []string{"tablet"},
		Category:        "Analgesic",
		Manufacturer:    "Various",
		SeverityLevel:   "mild",
		DiseasesTreated: []string{"Fever"},
	})
	require.NoError(t, err)
	_, err = ms.CreateDisease(ctx, &domain.Disease{
		Name:     "Flu",
		Symptoms: []string{"fever", "cough"},
		Severity: "moderate",
	})
	require.NoError(t, err)

	return &testEnv{store: ms, handler: buildHandler(t, ms, ms)}
}

func buildHandler(t *testing.T, ms *repository.MemoryStore, checks repository.SymptomChecksRepository) http.Handler {
	logger := zap.NewNop()
	api := NewAPI(
		service.NewCatalogService(ms, ms, nil, 0, logger),
		service.NewSymptomService(checks, logger),
		service.NewConsultationService(ms, logger),
		service.NewImageService(t.TempDir(), logger),
		"memory",
		logger,
	)
	return NewHandler(api, logger)
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeFail(t *testing.T, w *httptest.ResponseRecorder) Result[any] {
	t.Helper()
	var res Result[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	assert.Equal(t, ResultError, res.Code)
	assert.Equal(t, "error", res.Type)
	return res
}

func TestListMedicines_SummaryProjection(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/medicines", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, map[string]any{
		"id":           float64(1),
		"name":         "Paracetamol",
		"generic_name": "Acetaminophen",
		"description":  "Pain reliever and fever reducer",
		"category":     "Analgesic",
	}, got[0])
}

func TestListMedicines_EmptyIsArray(t *testing.T) {
	ms := repository.NewMemoryStore()
	h := buildHandler(t, ms, ms)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/medicines", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetMedicine(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/medicines/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var m domain.Medicine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, "Various", m.Manufacturer)
	assert.Equal(t, []string{"tablet"}, m.DosageForms)

	for _, target := range []string{"/api/medicines/99", "/api/medicines/abc", "/api/medicines/1/x"} {
		w = env.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		decodeFail(t, w)
	}
}

func TestExportMedicines(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/medicines/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "medicines.xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestDiseases(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/diseases", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Flu","description":"","symptoms":["fever","cough"],"severity":"moderate","treatment_info":""}]`, w.Body.String())

	w = env.do(http.MethodGet, "/api/diseases/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/diseases/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSymptomCheck_UnionOfKeywords(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/api/symptom-check", `{"symptoms":"fever, headache","age":31,"gender":"male"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp service.SymptomCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	want := []string{"Common Cold", "Flu", "Malaria", "Migraine", "Tension Headache", "Cluster Headache"}
	if diff := cmp.Diff(want, resp.PredictedDiseases, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("predicted_diseases mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Please consult a healthcare professional for proper diagnosis", resp.Recommendations)

	logs := env.store.SymptomChecks()
	require.Len(t, logs, 1)
	assert.Equal(t, 31, logs[0].UserAge)
	assert.Equal(t, "male", logs[0].UserGender)
}

func TestSymptomCheck_EachCallAppendsOneRow(t *testing.T) {
	env := newTestEnv(t)
	bodies := []string{
		`{"symptoms":"fever"}`,
		`{"symptoms":"rash"}`,
		`{}`,
		``,
		`{"symptoms":"FEVER, fever, feverish"}`,
	}
	for i, body := range bodies {
		w := env.do(http.MethodPost, "/api/symptom-check", body)
		require.Equal(t, http.StatusOK, w.Code, body)
		n, err := env.store.CountSymptomChecks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i+1, n, body)
	}

	logs := env.store.SymptomChecks()
	// empty body takes the defaults
	assert.Equal(t, 25, logs[3].UserAge)
	assert.Equal(t, "unknown", logs[3].UserGender)
}

func TestSymptomCheck_ExplicitEmptyGenderIsKept(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/api/symptom-check", `{"symptoms":"fever","gender":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	logs := env.store.SymptomChecks()
	require.Len(t, logs, 1)
	assert.Equal(t, "", logs[0].UserGender)
	assert.Equal(t, 25, logs[0].UserAge)
}

func TestSymptomCheck_NoMatchIsEmptyArray(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/api/symptom-check", `{"symptoms":"rash"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"predicted_diseases":[],"recommendations":"Please consult a healthcare professional for proper diagnosis"}`, w.Body.String())
}

func TestSymptomCheck_MalformedBody(t *testing.T) {
	env := newTestEnv(t)
	for _, body := range []string{`{"symptoms":`, `{"symptoms":"fever","age":"old"}`, `[1,2]`} {
		w := env.do(http.MethodPost, "/api/symptom-check", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		decodeFail(t, w)
	}
	n, err := env.store.CountSymptomChecks(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

type brokenChecks struct{}

func (brokenChecks) AppendSymptomCheck(context.Context, *domain.SymptomCheckLog) (int64, error) {
	return 0, errors.New("connection reset")
}

func (brokenChecks) CountSymptomChecks(context.Context) (int, error) { return 0, nil }

func TestSymptomCheck_StoreFailureIs500(t *testing.T) {
	ms := repository.NewMemoryStore()
	h := buildHandler(t, ms, brokenChecks{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/symptom-check", strings.NewReader(`{"symptoms":"fever"}`)))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	res := decodeFail(t, w)
	assert.NotContains(t, res.Message, "connection reset")
}

func TestRecommendations(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/recommendations", `{"disease":"Common Cold","age":40,"weight":80,"severity":"severe"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"medicines":["Paracetamol","Cough Syrup"],"dosage":"As per doctor prescription","precautions":"Take with food, avoid alcohol"}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/recommendations", `{"disease":"Scurvy"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"medicines":["Consult doctor"],"dosage":"As prescribed","precautions":"Follow medical advice"}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/recommendations", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	decodeFail(t, w)
}

func TestCreateConsultation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/consultations", `{"patient_name":"Jo","age":50,"diagnosis":"Fever","symptoms":"fever"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	logs := env.store.Consultations()
	require.Len(t, logs, 1)
	assert.Equal(t, []string{"Paracetamol", "Ibuprofen"}, logs[0].RecommendedMedicines)

	w = env.do(http.MethodPost, "/api/consultations", `{"age":50}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func imageRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzeImage(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, imageRequest(t, "image", "skin.jpg", "image/jpeg", []byte{0xff, 0xd8, 0xff}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Image analysis not implemented yet", resp["analysis"])
	assert.Equal(t, []any{"Consult a healthcare professional for proper diagnosis"}, resp["suggestions"])
	assert.True(t, strings.HasSuffix(resp["file"].(string), ".jpg"))
}

func TestAnalyzeImage_Rejects(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, imageRequest(t, "image", "notes.txt", "text/plain", []byte("hi")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	env.handler.ServeHTTP(w, imageRequest(t, "file", "skin.jpg", "image/jpeg", []byte{1}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/analyze-image", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSAndRequestID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodOptions, "/api/symptom-check", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = env.do(http.MethodGet, "/api/medicines", "")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestMethodNotAllowedAndUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/symptom-check", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	decodeFail(t, w)

	w = env.do(http.MethodPost, "/api/medicines", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = env.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexAndHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Medicine Guide")
	assert.Contains(t, w.Body.String(), "1 medicines in the catalog")
	assert.Contains(t, w.Body.String(), "Symptom keywords: cough, fever, headache, nausea")

	w = env.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"memory"}`, w.Body.String())
}

func TestPathID(t *testing.T) {
	id, ok := pathID("/api/medicines/12", "/api/medicines/")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	id, ok = pathID("/api/medicines/12/", "/api/medicines/")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	for _, p := range []string{"/api/medicines/", "/api/medicines/0", "/api/medicines/-3", "/api/medicines/a/b"} {
		_, ok = pathID(p, "/api/medicines/")
		assert.False(t, ok, p)
	}
}
