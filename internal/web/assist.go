package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lawsnap/internal/advisor"
	"lawsnap/internal/document"
	"lawsnap/internal/httputil"
)

type assistForm struct {
	Query string `validate:"required"`
}

func (h *Handler) assistPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "assist", assistData(""))
}

func (h *Handler) assist(w http.ResponseWriter, r *http.Request) {
	maxSize := h.deps.Config.MaxUploadSize
	// leave room for the text fields and multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)

	if err := r.ParseMultipartForm(maxSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			data := assistData("")
			data.Error = fmt.Sprintf("Attachment too large (max %d bytes).", maxSize)
			h.render(w, http.StatusRequestEntityTooLarge, "assist", data)
			return
		}
		httputil.Fail(h.log, w, "invalid form", err, http.StatusBadRequest)
		return
	}

	typed := strings.TrimSpace(r.FormValue("query"))
	data := assistData(typed)

	name, attachment, err := h.readAttachment(r)
	if err != nil {
		h.log.Warn("attachment rejected", "err", err)
		data.Error = "Attachment rejected: " + err.Error()
		h.render(w, http.StatusBadRequest, "assist", data)
		return
	}

	form := assistForm{Query: advisor.ComposeQuery(typed, name, attachment)}
	if err := httputil.Validator.Struct(form); err != nil {
		data.Error = "Please enter a legal query or attach a document."
		h.render(w, http.StatusBadRequest, "assist", data)
		return
	}

	advice, err := h.advisor.Assist(r.Context(), form.Query)
	if err != nil {
		// the failure text is already part of advice
		h.log.Error("legal assistance incomplete", "err", err)
	}
	data.Advice = &advice
	h.render(w, http.StatusOK, "assist", data)
}

// readAttachment returns the optional uploaded document as text. No upload
// yields empty strings.
func (h *Handler) readAttachment(r *http.Request) (string, string, error) {
	if r.MultipartForm == nil {
		return "", "", nil
	}
	file, header, err := r.FormFile("attachment")
	if errors.Is(err, http.ErrMissingFile) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	if header.Size == 0 {
		return "", "", nil
	}
	if header.Size > h.deps.Config.MaxUploadSize {
		return "", "", fmt.Errorf("%w (max %d bytes)", document.ErrTooLarge, h.deps.Config.MaxUploadSize)
	}
	contentType, err := document.DetectType(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		return "", "", err
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}
	text, err := document.Extract(contentType, content)
	if err != nil {
		return "", "", err
	}
	text, truncated := document.Excerpt(text, h.deps.Config.AttachmentMaxWords)
	if truncated {
		h.log.Info("attachment truncated", "filename", header.Filename, "max_words", h.deps.Config.AttachmentMaxWords)
	}
	return header.Filename, text, nil
}

func assistData(query string) page {
	return page{
		Title:  "AI-Powered Lawyer Assistance",
		Active: "assist",
		Query:  query,
	}
}
