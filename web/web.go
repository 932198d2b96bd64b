// Package web embeds the HTML templates of the site.
package web

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Funcs are available to every template.
var Funcs = template.FuncMap{
	"rupiah": func(d decimal.Decimal) string { return "Rp" + venue.FormatThousands(d) },
	"attr":   func(s string) template.HTMLAttr { return template.HTMLAttr(s) },
}

// Templates parses the embedded templates. Each page is addressed by its file name.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.tmpl"))
}
