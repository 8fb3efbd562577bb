package server

import "net/http"

func NewRouter(handler *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/extract", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			handler.ExtractDocument(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	mux.HandleFunc("/classify", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			handler.ClassifyDocument(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	mux.HandleFunc("/jobs/export", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			handler.ExportJobs(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			handler.Healthz(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	return mux
}
