package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"debtster-collections/internal/clients"

	"github.com/go-chi/chi/v5"
)

type workbookExportRequest struct {
	Sheets []string `json:"sheets"`
}

func (h *Handler) dump(w http.ResponseWriter, r *http.Request) {
	d, err := h.export.Dump(r.Context())
	if err != nil {
		h.writeError(w, r, "dump", err)
		return
	}
	Success(w, "", d)
}

func (h *Handler) startWorkbookExport(w http.ResponseWriter, r *http.Request) {
	var req workbookExportRequest
	if writeValidation(w, decodeJSON(w, r, &req, true)) {
		return
	}

	st, err := h.export.StartWorkbookExport(r.Context(), req.Sheets)
	if err != nil {
		h.writeError(w, r, "startWorkbookExport", err)
		return
	}

	SuccessAccepted(w, "export queued", map[string]any{
		"export_id": st.ID,
		"sheets":    st.Sheets,
		"ws":        "/ws?export_id=" + st.ID,
	})
}

func (h *Handler) listExportJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.export.ListJobs(r.Context())
	if err != nil {
		h.writeError(w, r, "listExportJobs", err)
		return
	}
	Success(w, "", jobs)
}

func (h *Handler) getExportJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.export.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "getExportJob", err)
		return
	}
	Success(w, "", job)
}

// serveFile sends a finished workbook as an attachment named after the
// original file.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")
	path, err := h.files.Path(name)
	if err != nil {
		ErrorNotFound(w, "file not found")
		return
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		ErrorNotFound(w, "file not found")
		return
	}

	original := clients.OriginalName(filepath.Base(path))
	original = strings.ReplaceAll(original, `"`, "")
	w.Header().Set("Content-Disposition", `attachment; filename="`+original+`"`)
	http.ServeFile(w, r, path)
}

func (h *Handler) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	exportID := strings.TrimSpace(r.URL.Query().Get("export_id"))
	if exportID == "" {
		ErrorBadRequest(w, "export_id", "export_id is required")
		return
	}
	h.hub.HandleWebSocket(w, r, exportID)
}
