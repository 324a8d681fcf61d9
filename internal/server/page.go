package server

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/content"
	"github.com/tartampluch/go-fortune/internal/export"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Report.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; color: #2d3436; }
h1 { color: #6c5ce7; }
th { text-align: left; padding-right: 1rem; white-space: nowrap; }
section { margin-top: 1.5rem; }
.notice { color: #d35400; }
</style>
</head>
<body>
<h1>{{.Report.Title}}</h1>
{{if not .Report.Generated.IsZero}}<p><small>{{.Report.Generated.Format .DateFormat}}</small></p>{{end}}
{{with .Report.Notice}}<p class="notice">{{.}}</p>{{end}}
<table>
{{range .Report.Facts}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
{{end}}</table>
{{range .Report.Sections}}<section>
<h2>{{.Title}}</h2>
{{blocks .Body}}
</section>
{{end}}{{if .ShareURL}}<section>
<p><a href="{{.ShareURL}}">{{.ShareURL}}</a></p>
<img src="{{.QRPath}}" alt="QR" width="{{.QRSize}}" height="{{.QRSize}}">
</section>
{{end}}<p><a href="{{.CalendarPath}}">{{.CalendarPath}}</a></p>
</body>
</html>
`

var page = template.Must(template.New("preview").Funcs(template.FuncMap{
	// RenderHTML escapes every text node itself.
	"blocks": func(c content.Content) template.HTML { return template.HTML(content.RenderHTML(c)) },
}).Parse(pageTemplate))

func renderPage(pv Preview) ([]byte, error) {
	if pv.Report == nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplateExecute, errors.New(config.ErrNoPrediction))
	}

	data := struct {
		Report       *export.Report
		ShareURL     string
		DateFormat   string
		QRPath       string
		QRSize       int
		CalendarPath string
	}{
		Report:       pv.Report,
		ShareURL:     pv.ShareURL,
		DateFormat:   config.DateFormatReport,
		QRPath:       config.RouteQRCode,
		QRSize:       config.QRSize,
		CalendarPath: config.RouteCalendar,
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplateExecute, err)
	}
	return buf.Bytes(), nil
}
