package webui

import (
	"embed"
	"io/fs"

	"loopwalk.dev/internal/app"
)

//go:embed static debug_index.html
var assets embed.FS

// WebUI serves the browser planner and the debug pages.
type WebUI struct {
	*app.Application
}

func NewWebUI(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

func staticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic("webui: missing embedded static directory: " + err.Error())
	}
	return sub
}
