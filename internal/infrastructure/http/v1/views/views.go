// Package views holds the server-rendered HTML pages.
package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"stockmaster/internal/core/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Load parses the embedded templates. Amounts are printed with currency.
func Load(currency string) (*template.Template, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return types.FormatMoney(d, currency)
		},
		"price": func(d decimal.Decimal) string {
			return d.StringFixed(types.MoneyScale)
		},
		"datetime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}
