package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"

	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/analysis"
	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/analysis/memstore"
	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/sessionmw"
	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/web"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dict := analysis.DefaultDictionary()
	registry := analysis.NewRegistry()
	registry.Register(analysis.NewEntityExtractor(dict))
	registry.Register(analysis.NewRiskAnalyzer(dict))
	registry.Register(analysis.NewStoryGenerator(dict))

	engine := analysis.NewEngine(registry, log.Nop(), analysis.EngineHooks{})
	svc := analysis.NewService(memstore.New(0), engine, log.Nop(), nil)

	r := chi.NewRouter()
	r.Use(sessionmw.Sessions("test-secret"))
	web.New(log.Nop(), svc).RegisterRoutes(r)
	return r
}

// client carries the session cookie across requests like a browser would.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if cs := rec.Result().Cookies(); len(cs) > 0 {
		c.cookies = cs
	}
	return rec
}

func TestIndex(t *testing.T) {
	t.Parallel()

	c := &client{t: t, handler: newTestRouter(t)}
	rec := c.do(http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), `name="description"`) {
		t.Error("index page missing the description textarea")
	}
}

func TestAnalyzeMissingField(t *testing.T) {
	t.Parallel()

	c := &client{t: t, handler: newTestRouter(t)}
	rec := c.do(http.MethodPost, "/analyze", url.Values{"unrelated": {"x"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /analyze without description = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please provide a project description.") {
		t.Error("422 response missing the validation message")
	}

	// no bundle must have been stored for the session
	rec = c.do(http.MethodGet, "/results", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Errorf("GET /results after rejected submit = %d -> %q, want 302 to /", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAnalyzeAndResults(t *testing.T) {
	t.Parallel()

	c := &client{t: t, handler: newTestRouter(t)}
	rec := c.do(http.MethodPost, "/analyze", url.Values{
		"description": {"Users can make a payment for each order."},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /analyze = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/results" {
		t.Fatalf("redirect = %q, want /results", loc)
	}

	rec = c.do(http.MethodGet, "/results", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /results = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Users can make a payment for each order.", "User", "Order", "Payment", "Payment gateway"} {
		if !strings.Contains(body, want) {
			t.Errorf("results page missing %q", want)
		}
	}
}

func TestAnalyzeEmptyDescriptionIsAccepted(t *testing.T) {
	t.Parallel()

	c := &client{t: t, handler: newTestRouter(t)}
	rec := c.do(http.MethodPost, "/analyze", url.Values{"description": {""}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /analyze with empty description = %d, want 303 (empty is valid)", rec.Code)
	}

	rec = c.do(http.MethodGet, "/results", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /results = %d, want 200", rec.Code)
	}
	// generic risks still apply to an empty project
	if !strings.Contains(rec.Body.String(), "Performance issues with large datasets") {
		t.Error("results for empty description missing generic risks")
	}
}

func TestResultsWithoutBundleRedirects(t *testing.T) {
	t.Parallel()

	c := &client{t: t, handler: newTestRouter(t)}
	rec := c.do(http.MethodGet, "/results", nil)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Errorf("GET /results on fresh session = %d -> %q, want 302 to /", rec.Code, rec.Header().Get("Location"))
	}
}

func TestDemoPrefillsForm(t *testing.T) {
	t.Parallel()

	c := &client{t: t, handler: newTestRouter(t)}
	rec := c.do(http.MethodGet, "/demo", nil)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("GET /demo = %d -> %q, want 302 to /", rec.Code, rec.Header().Get("Location"))
	}

	rec = c.do(http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / after demo = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "register and login securely") {
		t.Error("form not pre-filled with demo description")
	}
}

func TestDemoDraftClearedAfterAnalyze(t *testing.T) {
	t.Parallel()

	c := &client{t: t, handler: newTestRouter(t)}
	c.do(http.MethodGet, "/demo", nil)
	c.do(http.MethodPost, "/analyze", url.Values{"description": {"Users manage their tasks."}})

	rec := c.do(http.MethodGet, "/", nil)
	if strings.Contains(rec.Body.String(), "register and login securely") {
		t.Error("demo draft still pre-filled after a successful analyze")
	}
}

func TestExportStoriesPDF(t *testing.T) {
	t.Parallel()

	c := &client{t: t, handler: newTestRouter(t)}

	// without a bundle the export bounces back to the form
	rec := c.do(http.MethodGet, "/export/stories.pdf", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("export without bundle = %d -> %q, want 302 to /", rec.Code, rec.Header().Get("Location"))
	}

	c.do(http.MethodPost, "/analyze", url.Values{"description": {"Users can create and manage projects."}})

	rec = c.do(http.MethodGet, "/export/stories.pdf", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "specgenie_user_stories.pdf") {
		t.Errorf("Content-Disposition = %q, want attachment filename", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("body does not start with a PDF header")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)
	alice := &client{t: t, handler: h}
	bob := &client{t: t, handler: h}

	alice.do(http.MethodPost, "/analyze", url.Values{"description": {"Users pay for orders."}})

	rec := bob.do(http.MethodGet, "/results", nil)
	if rec.Code != http.StatusFound {
		t.Errorf("bob sees alice's results: status = %d, want 302", rec.Code)
	}
}
