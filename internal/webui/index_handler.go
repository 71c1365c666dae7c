package webui

import (
	"io/fs"
	"net/http"
)

func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(staticFS(), "index.html")
	if err != nil {
		webUI.Logger.Error("failed to read index page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(page); err != nil {
		webUI.Logger.Error("failed to write index page", "error", err)
	}
}
