package handler

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"roster/internal/export"
	"roster/internal/model"
	"roster/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"rating": func(r *int) string {
		if r == nil {
			return ""
		}
		return strconv.Itoa(*r)
	},
}).ParseFS(templateFS, "templates/*.html"))

var notices = map[string]string{
	"added":    "Student added successfully!",
	"updated":  "Student updated successfully!",
	"deleted":  "Student deleted successfully!",
	"exported": "Data exported to CSV successfully!",
}

// histogramBarEm is the width of the tallest histogram bar.
const histogramBarEm = 20

// PageHandler serves the HTML form, table and statistics pages.
type PageHandler struct {
	store      StudentStore
	exportPath string
	log        zerolog.Logger
}

func NewPageHandler(store StudentStore, exportPath string, log zerolog.Logger) *PageHandler {
	return &PageHandler{store: store, exportPath: exportPath, log: log}
}

type indexPage struct {
	Students []model.Student
	Name     string
	Age      string
	Form     service.StudentForm
	EditID   uint
	Error    string
	Notice   string
}

type histogramBar struct {
	Rating int
	Count  int64
	Width  int64
}

type statsPage struct {
	Count      int64
	AverageAge float64
	Bars       []histogramBar
}

// Index renders the form and the table of displayed rows.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := indexPage{
		Name:   query.Get("name"),
		Age:    query.Get("age"),
		Notice: notices[query.Get("notice")],
	}

	students, err := displayed(r.Context(), h.store, r)
	if err != nil {
		if !service.IsValidation(err) {
			h.fail(w, err)
			return
		}
		page.Error = err.Error()
		h.renderIndex(w, http.StatusUnprocessableEntity, page)
		return
	}
	page.Students = students

	if raw := query.Get("edit"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			for _, s := range students {
				if uint64(s.ID) == id {
					page.EditID = s.ID
					page.Form = formOf(s)
				}
			}
		}
	}

	h.renderIndex(w, http.StatusOK, page)
}

func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := readForm(r)
	in, err := service.ParseStudentForm(form)
	if err != nil {
		h.rejectForm(w, r, 0, form, err)
		return
	}

	if _, err := h.store.Create(r.Context(), in); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, "/?notice=added", http.StatusSeeOther)
}

func (h *PageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(r)
	if !ok {
		http.Error(w, "invalid student id", http.StatusBadRequest)
		return
	}

	form := readForm(r)
	in, err := service.ParseStudentForm(form)
	if err != nil {
		h.rejectForm(w, r, id, form, err)
		return
	}

	if err := h.store.Update(r.Context(), id, in); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, "/?notice=updated", http.StatusSeeOther)
}

func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(r)
	if !ok {
		http.Error(w, "invalid student id", http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, "/?notice=deleted", http.StatusSeeOther)
}

// Download streams the displayed rows as a CSV attachment.
func (h *PageHandler) Download(w http.ResponseWriter, r *http.Request) {
	students, err := displayed(r.Context(), h.store, r)
	if err != nil {
		if service.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)
	if err := export.WriteCSV(w, students); err != nil {
		h.log.Error().Err(err).Msg("write CSV response")
	}
}

// Export writes every row to the configured export file.
func (h *PageHandler) Export(w http.ResponseWriter, r *http.Request) {
	students, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := export.WriteFile(h.exportPath, students); err != nil {
		h.fail(w, err)
		return
	}

	h.log.Info().Str("path", h.exportPath).Int("rows", len(students)).Msg("CSV exported")
	http.Redirect(w, r, "/?notice=exported", http.StatusSeeOther)
}

func (h *PageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	var tallest int64
	for _, n := range stats.RatingHistogram {
		if n > tallest {
			tallest = n
		}
	}

	page := statsPage{Count: stats.Count, AverageAge: stats.AverageAge}
	for i, n := range stats.RatingHistogram {
		bar := histogramBar{Rating: i + 1, Count: n}
		if tallest > 0 {
			bar.Width = n * histogramBarEm / tallest
		}
		page.Bars = append(page.Bars, bar)
	}

	h.render(w, http.StatusOK, "stats.html", page)
}

// rejectForm re-renders the page with the submitted values and the
// validation message.
func (h *PageHandler) rejectForm(w http.ResponseWriter, r *http.Request, editID uint, form service.StudentForm, err error) {
	if !service.IsValidation(err) {
		h.fail(w, err)
		return
	}

	students, listErr := h.store.List(r.Context())
	if listErr != nil {
		h.fail(w, listErr)
		return
	}

	h.renderIndex(w, http.StatusUnprocessableEntity, indexPage{
		Students: students,
		Form:     form,
		EditID:   editID,
		Error:    err.Error(),
	})
}

func (h *PageHandler) renderIndex(w http.ResponseWriter, status int, page indexPage) {
	h.render(w, status, "index.html", page)
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("render page")
	}
}

func (h *PageHandler) fail(w http.ResponseWriter, err error) {
	h.log.Error().Err(err).Msg("storage error")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func readForm(r *http.Request) service.StudentForm {
	return service.StudentForm{
		Name:     r.PostFormValue("name"),
		Age:      r.PostFormValue("age"),
		Grade:    r.PostFormValue("grade"),
		Rating:   r.PostFormValue("rating"),
		Comments: r.PostFormValue("comments"),
	}
}

func formOf(s model.Student) service.StudentForm {
	f := service.StudentForm{
		Name:     s.Name,
		Age:      strconv.Itoa(s.Age),
		Grade:    s.Grade,
		Comments: s.Comments,
	}
	if s.Rating != nil {
		f.Rating = strconv.Itoa(*s.Rating)
	}
	return f
}
