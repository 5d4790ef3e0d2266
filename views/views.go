// Package views holds the embedded HTML templates.
package views

import (
	"embed"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html layouts/*.html
var files embed.FS

// NewEngine template engine over the embedded files.
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.AddFunc("datetime", func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	})
	return engine
}
