package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/analysis"
	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/sessionmw"
)

func (u *UI) handleExportStoriesPDF(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionmw.FromContext(r.Context())
	if !ok {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	b, found, err := u.svc.Result(r.Context(), sid)
	if err != nil {
		u.logger.Error(r.Context(), err, "failed to load results for export", "session_id", sid)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	buf, err := storiesPDF(b)
	if err != nil {
		u.logger.Error(r.Context(), err, "pdf generation failed", "session_id", sid)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="specgenie_user_stories.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// storiesPDF renders the bundle's user stories as a single-column PDF.
func storiesPDF(b *analysis.Bundle) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "SpecGenie - User Stories", "", 1, "", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	for _, s := range b.Stories {
		pdf.MultiCell(0, 8, "- "+s.Text(), "", "", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
