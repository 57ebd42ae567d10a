// Package web serves the HTML user interface: the description form, the
// rendered specification, the demo pre-fill, and the PDF story export.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/analysis"
	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/sessionmw"
)

//go:embed templates/*.html
var templatesFS embed.FS

// SampleDescription is the fixed demo project loaded by GET /demo.
const SampleDescription = `The system should allow users to register and login securely.
Users can create and manage their projects.
Each project can have multiple tasks with deadlines.
Admins can view reports and manage all users.
The system should send notifications for upcoming deadlines.
Users can upload files and attach them to tasks.
The database should store all project and task information.
Users can search and filter their tasks by status or date.`

// AnalysisService defines the business operations the UI needs.
type AnalysisService interface {
	Analyze(ctx context.Context, sessionID, description string) (*analysis.Bundle, error)
	Result(ctx context.Context, sessionID string) (*analysis.Bundle, bool, error)
	Draft(ctx context.Context, sessionID string) (string, bool, error)
	SaveDraft(ctx context.Context, sessionID, description string) error
	RecordRejected()
}

// UI holds dependencies for the HTML handlers.
type UI struct {
	logger log.Logger
	svc    AnalysisService
	tmpl   *template.Template
}

// New creates a new UI handler.
func New(logger log.Logger, svc AnalysisService) *UI {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("analysis service is required"))
	}
	return &UI{
		logger: logger,
		svc:    svc,
		tmpl:   template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

// RegisterRoutes attaches the UI endpoints to the router.
func (u *UI) RegisterRoutes(r chi.Router) {
	r.Get("/", u.handleIndex)
	r.Post("/analyze", u.handleAnalyze)
	r.Get("/results", u.handleResults)
	r.Get("/demo", u.handleDemo)
	r.Get("/export/stories.pdf", u.handleExportStoriesPDF)
}

type indexData struct {
	Description string
	Error       string
}

func (u *UI) handleIndex(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionmw.FromContext(r.Context())
	if !ok {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	draft, _, err := u.svc.Draft(r.Context(), sid)
	if err != nil {
		u.logger.Error(r.Context(), err, "failed to load draft", "session_id", sid)
		// the form is still usable without the pre-fill
	}

	u.render(w, r, http.StatusOK, "index.html", indexData{Description: draft})
}

func (u *UI) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionmw.FromContext(r.Context())
	if !ok {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	// An absent field is an input error; an empty one is a valid submission
	// that produces a near-empty bundle.
	values, present := r.PostForm["description"]
	if !present {
		u.svc.RecordRejected()
		u.render(w, r, http.StatusUnprocessableEntity, "index.html", indexData{
			Error: "Please provide a project description.",
		})
		return
	}

	if _, err := u.svc.Analyze(r.Context(), sid, strings.TrimSpace(values[0])); err != nil {
		u.logger.Error(r.Context(), err, "analysis failed", "session_id", sid)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

func (u *UI) handleResults(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionmw.FromContext(r.Context())
	if !ok {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	b, found, err := u.svc.Result(r.Context(), sid)
	if err != nil {
		u.logger.Error(r.Context(), err, "failed to load results", "session_id", sid)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	u.render(w, r, http.StatusOK, "results.html", struct{ Bundle *analysis.Bundle }{b})
}

func (u *UI) handleDemo(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionmw.FromContext(r.Context())
	if !ok {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	if err := u.svc.SaveDraft(r.Context(), sid, SampleDescription); err != nil {
		u.logger.Error(r.Context(), err, "failed to save demo draft", "session_id", sid)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (u *UI) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := u.tmpl.ExecuteTemplate(w, name, data); err != nil {
		u.logger.Error(r.Context(), err, "template render failed", "template", name)
	}
}
