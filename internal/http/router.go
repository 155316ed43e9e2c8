package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router uses the standard library http.ServeMux; methods are checked per route.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, Fail("method not allowed"))
}

// RegisterRoutes wires every endpoint of the medguide API.
func (r *Router) RegisterRoutes(a *API) {
	r.Handle("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			r.logger.Debug("no route", zap.String("path", req.URL.Path))
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			methodNotAllowed(w)
			return
		}
		a.Index(w, req)
	})

	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		a.Health(w, req)
	})

	r.Handle("/api/medicines", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		a.ListMedicines(w, req)
	})

	// /api/medicines/export and /api/medicines/{id}
	r.Handle("/api/medicines/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		if strings.TrimSuffix(req.URL.Path, "/") == "/api/medicines/export" {
			a.ExportMedicines(w, req)
			return
		}
		a.GetMedicine(w, req)
	})

	r.Handle("/api/diseases", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		a.ListDiseases(w, req)
	})

	r.Handle("/api/diseases/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		a.GetDisease(w, req)
	})

	r.Handle("/api/symptom-check", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		a.SymptomCheck(w, req)
	})

	r.Handle("/api/recommendations", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		a.Recommendations(w, req)
	})

	r.Handle("/api/consultations", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		a.CreateConsultation(w, req)
	})

	r.Handle("/api/analyze-image", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		a.AnalyzeImage(w, req)
	})
}
