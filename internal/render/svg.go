package render

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"
)

//go:embed map.svg.tmpl
var mapTemplateText string

var mapTemplate = template.Must(template.New("map.svg").Parse(mapTemplateText))

// WriteSVG renders m as a standalone SVG document.
func WriteSVG(w io.Writer, m CircleMap) error {
	return mapTemplate.Execute(w, m)
}

func SVG(m CircleMap) (string, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
