package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// NewRouter wires the page and API routes onto one router.
func NewRouter(store StudentStore, exportPath string, log zerolog.Logger) *mux.Router {
	pages := NewPageHandler(store, exportPath, log)
	api := NewStudentHandler(store, log)

	r := mux.NewRouter()

	r.HandleFunc("/", pages.Index).Methods("GET")
	r.HandleFunc("/students", pages.Create).Methods("POST")
	r.HandleFunc("/students/{id}", pages.Update).Methods("POST")
	r.HandleFunc("/students/{id}/delete", pages.Delete).Methods("POST")
	r.HandleFunc("/export", pages.Download).Methods("GET")
	r.HandleFunc("/export", pages.Export).Methods("POST")
	r.HandleFunc("/stats", pages.Stats).Methods("GET")

	s := r.PathPrefix("/api").Subrouter()
	s.HandleFunc("/students", api.ListStudents).Methods("GET")
	s.HandleFunc("/students", api.CreateStudent).Methods("POST")
	s.HandleFunc("/students/{id}", api.UpdateStudent).Methods("PUT")
	s.HandleFunc("/students/{id}", api.DeleteStudent).Methods("DELETE")
	s.HandleFunc("/stats", api.GetStats).Methods("GET")

	return r
}

// Wrap adds panic recovery, CORS for the given origins and request logging.
func Wrap(h http.Handler, origins []string, log zerolog.Logger) http.Handler {
	h = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{log}))(h)
	return handlers.CustomLoggingHandler(io.Discard, h, requestLogger(log))
}

func requestLogger(log zerolog.Logger) handlers.LogFormatter {
	return func(_ io.Writer, p handlers.LogFormatterParams) {
		log.Info().
			Str("method", p.Request.Method).
			Str("path", p.URL.Path).
			Int("status", p.StatusCode).
			Int("size", p.Size).
			Dur("took", time.Since(p.TimeStamp)).
			Msg("request")
	}
}

type recoveryLogger struct {
	log zerolog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error().Interface("panic", v).Msg("handler panicked")
}
