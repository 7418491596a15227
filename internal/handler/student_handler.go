package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"roster/internal/service"
)

// StudentHandler serves the JSON API.
type StudentHandler struct {
	store StudentStore
	log   zerolog.Logger
}

func NewStudentHandler(store StudentStore, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{store: store, log: log}
}

// studentRequest is the JSON body of create and update calls.
type studentRequest struct {
	Name     string `json:"name"`
	Age      *int   `json:"age"`
	Grade    string `json:"grade"`
	Rating   *int   `json:"rating"`
	Comments string `json:"comments"`
}

func (req studentRequest) form() service.StudentForm {
	f := service.StudentForm{Name: req.Name, Grade: req.Grade, Comments: req.Comments}
	if req.Age != nil {
		f.Age = strconv.Itoa(*req.Age)
	}
	if req.Rating != nil {
		f.Rating = strconv.Itoa(*req.Rating)
	}
	return f
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := displayed(r.Context(), h.store, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  students,
		"total": len(students),
	})
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	in, err := service.ParseStudentForm(req.form())
	if err != nil {
		h.fail(w, err)
		return
	}

	id, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}

	student := in.Student()
	student.ID = id
	writeJSON(w, http.StatusCreated, student)
}

func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	in, err := service.ParseStudentForm(req.form())
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := h.store.Update(r.Context(), id, in); err != nil {
		h.fail(w, err)
		return
	}

	student := in.Student()
	student.ID = id
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudentHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// fail maps validation errors to 422 and anything else to 500.
func (h *StudentHandler) fail(w http.ResponseWriter, err error) {
	if service.IsValidation(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("storage error")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
