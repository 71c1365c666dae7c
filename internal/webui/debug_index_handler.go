package webui

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"loopwalk.dev/internal/app"
	"loopwalk.dev/internal/stations"
)

var debugTemplate = template.Must(template.ParseFS(assets, "debug_index.html"))

var debugDataTypes = []string{"stations", "speeds", "plans", "storage", "config"}

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title:     title,
		Pre:       content,
		DataTypes: debugDataTypes,
	})
	if err != nil {
		webUI.Logger.Error("failed to render debug page", "error", err)
	}
}

// redactedConfig hides API keys but keeps how many are configured.
func (webUI *WebUI) redactedConfig() app.Config {
	config := webUI.Config
	config.ApiKeys = make([]string, len(webUI.Config.ApiKeys))
	for i, key := range webUI.Config.ApiKeys {
		config.ApiKeys[i] = strings.Repeat("*", len(key))
	}
	return config
}

type storageSummary struct {
	Backend     string
	Keys        []string
	TableCounts map[string]int
}

// storageReport lists what the plan storage backend holds.
func (webUI *WebUI) storageReport(ctx context.Context) (interface{}, error) {
	inspector, ok := webUI.InspectableStorage()
	if !ok {
		return map[string]string{
			"error": fmt.Sprintf("storage backend %T cannot be inspected", webUI.Storage),
		}, nil
	}

	keys, err := inspector.Keys(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := inspector.TableCounts(ctx)
	if err != nil {
		return nil, err
	}
	return storageSummary{
		Backend:     fmt.Sprintf("%T", webUI.Storage),
		Keys:        keys,
		TableCounts: counts,
	}, nil
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "stations":
		data = webUI.Stations.Stations()
		title = "Station Registry"
	case "speeds":
		data = stations.WalkingSpeeds()
		title = "Walking Speeds"
	case "plans":
		data = webUI.Plans.List(r.Context())
		title = "Stored Plans"
	case "storage":
		report, err := webUI.storageReport(r.Context())
		if err != nil {
			webUI.Logger.Error("failed to inspect plan storage", "error", err)
			http.Error(w, "failed to inspect plan storage", http.StatusInternalServerError)
			return
		}
		data = report
		title = "Plan Storage"
	case "config":
		data = webUI.redactedConfig()
		title = "Configuration"
	default:
		data = map[string]string{
			"error": "Please use one of the following: " + strings.Join(debugDataTypes, ", ") + ".",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, title, data)
}
