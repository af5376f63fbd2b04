package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sushihentaime/contentfilter/internal/common"
	"github.com/sushihentaime/contentfilter/internal/content"
	"github.com/sushihentaime/contentfilter/internal/renderservice"
)

type contentRequest struct {
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
	BaseURL     string `json:"base_url"`
}

type metadataReader interface {
	Metadata(r io.Reader) (map[string]any, error)
}

// validateRequest fills in the default content type and checks the fields
// shared by all content endpoints.
func (app *application) validateRequest(input *contentRequest) error {
	if !common.NotBlank(input.ContentType) {
		input.ContentType = app.config.DefaultContentType
	}

	v := common.NewValidator()
	v.Check(common.PermittedValue(input.ContentType, app.filter.MimeTypes()...), "content_type", fmt.Sprintf("must be one of %s", strings.Join(app.filter.MimeTypes(), ", ")))
	v.Check(len(input.Content) <= app.config.MaxContentBytes, "content", fmt.Sprintf("must not be more than %d bytes long", app.config.MaxContentBytes))

	if input.BaseURL != "" {
		u, err := url.Parse(input.BaseURL)
		v.Check(err == nil && u.IsAbs(), "base_url", "must be an absolute URL")
	}

	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}

func (app *application) readContentRequest(w http.ResponseWriter, r *http.Request) (*contentRequest, bool) {
	var input contentRequest

	err := app.parseJSON(w, r, &input, int64(app.config.MaxContentBytes)*2)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return nil, false
	}

	err = app.validateRequest(&input)
	if err != nil {
		var validationErr common.ValidationError
		if errors.As(err, &validationErr) {
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
			return nil, false
		}
		app.serverErrorResponse(w, r, err)
		return nil, false
	}

	return &input, true
}

func (app *application) contentTypesHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"content_types": app.filter.MimeTypes(),
		"default":       app.config.DefaultContentType,
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) allowlistHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"allowlist":       content.DefaultAllowlist(),
		"allowed_classes": app.config.AllowedClasses,
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) validateContentHandler(w http.ResponseWriter, r *http.Request) {
	input, ok := app.readContentRequest(w, r)
	if !ok {
		return
	}

	key := common.CacheKeyValidation(input.ContentType, input.Content)

	var message string
	if cached, found := app.cache.Get(key); found {
		message = cached.(string)
	} else {
		err := app.filter.Validate(input.ContentType, strings.NewReader(input.Content))
		if err != nil {
			var invalid *content.InvalidContentError
			if !errors.As(err, &invalid) {
				app.serverErrorResponse(w, r, err)
				return
			}
			message = invalid.Error()
		}
		app.cache.Set(key, message)
	}

	if message != "" {
		app.failedValidationErrorResponse(w, r, map[string]string{"content": message})
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"valid": true}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type preview struct {
	HTML     string         `json:"html"`
	Excerpt  string         `json:"excerpt"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (app *application) previewContentHandler(w http.ResponseWriter, r *http.Request) {
	input, ok := app.readContentRequest(w, r)
	if !ok {
		return
	}

	base := app.baseURL
	if input.BaseURL != "" {
		base, _ = url.Parse(input.BaseURL)
	}
	var baseKey string
	if base != nil {
		baseKey = base.String()
	}

	key := common.CacheKeyPreview(input.ContentType, baseKey, input.Content)
	if cached, found := app.cache.Get(key); found {
		err := app.writeJSON(w, http.StatusOK, envelope{"preview": cached.(preview)}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	html, err := content.FormatText(input.Content, base, content.ContentType(input.ContentType), app.filter)
	if err != nil {
		var parseErr *content.ParseError
		var typeErr *content.InvalidContentTypeError
		switch {
		case errors.As(err, &parseErr):
			app.failedValidationErrorResponse(w, r, map[string]string{"content": "could not be sanitized: " + parseErr.Error()})
		case errors.As(err, &typeErr):
			app.failedValidationErrorResponse(w, r, map[string]string{"content_type": typeErr.Error()})
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	p := preview{HTML: html, Excerpt: content.Excerpt(html, app.config.ExcerptWidth)}

	if f, err := app.filter.Resolve(input.ContentType); err == nil {
		if mr, ok := f.(metadataReader); ok {
			meta, err := mr.Metadata(strings.NewReader(input.Content))
			if err != nil {
				app.logger.Warn("could not read front matter", "error", err.Error(), "request_id", app.getRequestID(r))
			} else if len(meta) > 0 {
				p.Metadata = meta
			}
		}
	}

	app.cache.Set(key, p)

	err = app.writeJSON(w, http.StatusOK, envelope{"preview": p}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) renderContentHandler(w http.ResponseWriter, r *http.Request) {
	if app.producer == nil {
		app.queueUnavailableResponse(w, r)
		return
	}

	input, ok := app.readContentRequest(w, r)
	if !ok {
		return
	}

	job := renderservice.NewJob(input.ContentType, input.Content, input.BaseURL)
	if job.BaseURL == "" && app.baseURL != nil {
		job.BaseURL = app.baseURL.String()
	}

	err := renderservice.Submit(r.Context(), app.producer, job)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusAccepted, envelope{"id": job.ID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
