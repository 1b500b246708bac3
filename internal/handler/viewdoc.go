package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"protrack/internal/domain/services"
	"protrack/internal/httputil"
)

// ViewDocHandler handles the public share-link endpoints. These routes
// are reachable without a session; the PIN gate is the only protection.
type ViewDocHandler struct {
	shareService services.ShareLinkService
	logger       *slog.Logger
}

// NewViewDocHandler creates a new share-link handler
func NewViewDocHandler(shareService services.ShareLinkService, logger *slog.Logger) *ViewDocHandler {
	return &ViewDocHandler{
		shareService: shareService,
		logger:       logger,
	}
}

// GetMeta returns payload-free document info for the viewer page
// GET /api/view-doc/{docId}
func (h *ViewDocHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.shareService.GetMeta(r.Context(), r.PathValue("docId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"id":       meta.ID,
		"fileName": meta.FileName,
		"mimeType": meta.MimeType,
		"hasPin":   meta.HasPin,
	})
}

// ServeDocument streams the document payload after the PIN gate
// POST /api/view-doc/{docId}
func (h *ViewDocHandler) ServeDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pin string `json:"pin"`
	}
	// An empty body is fine for unprotected documents
	_ = httputil.ParseJSON(w, r, &req)

	doc, err := h.shareService.VerifyAndServe(r.Context(), r.PathValue("docId"), req.Pin)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.FileName))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.FileData)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.FileData)
}

// SetPin sets or clears the document share PIN
// PATCH /api/view-doc/{docId}
func (h *ViewDocHandler) SetPin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pin httputil.OptionalString `json:"pin"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Pin.Present {
		httputil.RespondError(w, http.StatusBadRequest, "pin field is required (string to set, null to clear)")
		return
	}

	meta, err := h.shareService.SetPin(r.Context(), r.PathValue("docId"), req.Pin.Value)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"id":       meta.ID,
		"fileName": meta.FileName,
		"hasPin":   meta.HasPin,
	})
}

// QRCode renders a PNG QR code pointing at the public viewer URL
// GET /api/view-doc/{docId}/qr
func (h *ViewDocHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, _ = strconv.Atoi(raw)
	}

	png, err := h.shareService.QRCode(r.Context(), r.PathValue("docId"), size)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
