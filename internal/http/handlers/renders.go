package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"renderapi/internal/domain"
	"renderapi/internal/middleware"
	"renderapi/internal/render"
)

// multipartMemory is how much of an upload is buffered in memory before the
// multipart reader spills to disk. It is not a size limit.
const multipartMemory = 32 << 20

// GenerateRender handles POST /generate-render.
func (a *App) GenerateRender(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		a.detail(w, http.StatusUnprocessableEntity, "expected multipart/form-data body")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	prompt := r.FormValue("prompt")
	if strings.TrimSpace(prompt) == "" {
		a.detail(w, http.StatusUnprocessableEntity, "field required: prompt")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.detail(w, http.StatusUnprocessableEntity, "field required: file")
		return
	}
	sketch, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		a.detail(w, http.StatusInternalServerError, fmt.Sprintf("read upload: %v", err))
		return
	}

	res, err := a.Renderer.Generate(r.Context(), render.Request{
		Prompt:      prompt,
		Filename:    header.Filename,
		Sketch:      sketch,
		ControlType: r.FormValue("control_type"),
	})
	if err != nil {
		a.Logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("generate render failed")
		a.detail(w, http.StatusInternalServerError, renderErrorDetail(err))
		return
	}
	a.json(w, http.StatusOK, res)
}

func renderErrorDetail(err error) string {
	var httpErr *domain.ProviderHTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Error()
	case errors.Is(err, domain.ErrEmptyResponse):
		return domain.ErrEmptyResponse.Error()
	default:
		return err.Error()
	}
}
