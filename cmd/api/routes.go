package main

import (
	"log/slog"
	"net/http"

	"loopwalk.dev/internal/app"
	"loopwalk.dev/internal/restapi"
	"loopwalk.dev/internal/webui"
)

// routes serves the JSON API and the browser UI from one router. Every request
// is logged and gets the security headers.
func routes(application *app.Application, api *restapi.RestAPI, logger *slog.Logger) http.Handler {
	ui := webui.NewWebUI(application)

	handler := api.Handler(ui.SetWebUIRoutes)
	handler = api.WithSecurityHeaders(handler)
	return restapi.NewRequestLoggingMiddleware(logger)(handler)
}
