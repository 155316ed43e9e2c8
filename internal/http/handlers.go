package httpapi

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"medguide/internal/diagnosis"
	"medguide/internal/repository"
	"medguide/internal/service"

	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

var endpoints = []string{
	"GET /api/medicines",
	"GET /api/medicines/{id}",
	"GET /api/medicines/export",
	"GET /api/diseases",
	"GET /api/diseases/{id}",
	"POST /api/symptom-check",
	"POST /api/recommendations",
	"POST /api/consultations",
	"POST /api/analyze-image",
}

// API holds the services behind the HTTP endpoints.
type API struct {
	catalog       service.CatalogService
	symptoms      service.SymptomService
	consultations service.ConsultationService
	images        service.ImageService
	backend       string // reported by /healthz: sqlite, postgres or memory
	logger        *zap.Logger
}

func NewAPI(
	catalog service.CatalogService,
	symptoms service.SymptomService,
	consultations service.ConsultationService,
	images service.ImageService,
	backend string,
	logger *zap.Logger,
) *API {
	return &API{
		catalog:       catalog,
		symptoms:      symptoms,
		consultations: consultations,
		images:        images,
		backend:       backend,
		logger:        logger,
	}
}

// fail maps service errors onto HTTP statuses.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, Fail("not found"))
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	default:
		a.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("internal server error"))
	}
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := readBodyJSON(r, maxBodyBytes, out); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, Fail(err.Error()))
			return false
		}
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return false
	}
	return true
}

func (a *API) Index(w http.ResponseWriter, r *http.Request) {
	meds, err := a.catalog.ListMedicines(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title         string
		MedicineCount int
		Keywords      []string
		Endpoints     []string
	}{"Medicine Guide", len(meds), diagnosis.Keywords(), endpoints}
	if err := indexTemplate.Execute(w, data); err != nil {
		a.logger.Error("failed to render index", zap.Error(err))
	}
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": a.backend})
}

func (a *API) ListMedicines(w http.ResponseWriter, r *http.Request) {
	meds, err := a.catalog.ListMedicines(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meds)
}

func (a *API) GetMedicine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/medicines/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("not found"))
		return
	}
	m, err := a.catalog.GetMedicine(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *API) ExportMedicines(w http.ResponseWriter, r *http.Request) {
	data, err := a.catalog.ExportMedicines(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=medicines.xlsx")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (a *API) ListDiseases(w http.ResponseWriter, r *http.Request) {
	diseases, err := a.catalog.ListDiseases(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, diseases)
}

func (a *API) GetDisease(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/diseases/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("not found"))
		return
	}
	d, err := a.catalog.GetDisease(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (a *API) SymptomCheck(w http.ResponseWriter, r *http.Request) {
	var req service.SymptomCheckRequest
	if !a.decode(w, r, &req) {
		return
	}
	resp, err := a.symptoms.Check(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req service.RecommendationRequest
	if !a.decode(w, r, &req) {
		return
	}
	rec, err := service.Recommend(req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *API) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	var req service.ConsultationRequest
	if !a.decode(w, r, &req) {
		return
	}
	id, err := a.consultations.Record(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (a *API) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageBytes+(1<<20))
	if err := r.ParseMultipartForm(service.MaxImageBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(fmt.Sprintf("failed to parse form: %v", err)))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("image not found in request"))
		return
	}
	defer file.Close()

	resp, err := a.images.Analyze(r.Context(), service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// NewHandler assembles the router with CORS and request logging.
func NewHandler(a *API, logger *zap.Logger) http.Handler {
	router := NewRouter(logger)
	router.RegisterRoutes(a)
	return WithRequestLogging(logger, WithCORS(router))
}
