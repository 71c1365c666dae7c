package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// SetWebUIRoutes registers the browser UI and the debug page on router.
func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.indexHandler)
	router.ServeFiles("/static/*filepath", http.FS(staticFS()))
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
