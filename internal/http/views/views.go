package views

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Load parses the embedded page templates. Each page is addressed by its
// file name, e.g. "index.html".
func Load() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"fmtTime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
	}).ParseFS(files, "templates/*.html"))
}
