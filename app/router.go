package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// content service
	router.HandlerFunc(http.MethodGet, "/v1/content/types", app.contentTypesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/content/allowlist", app.allowlistHandler)
	router.HandlerFunc(http.MethodPost, "/v1/content/validate", app.validateContentHandler)
	router.HandlerFunc(http.MethodPost, "/v1/content/preview", app.previewContentHandler)
	router.HandlerFunc(http.MethodPost, "/v1/content/render", app.renderContentHandler)

	return app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(router))))
}
