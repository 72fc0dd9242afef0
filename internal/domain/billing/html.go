package billing

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/bill.html
var templateFS embed.FS

var billTemplate = template.Must(template.New("bill.html").Funcs(template.FuncMap{
	"money": FormatAmount,
	"date":  FormatDate,
	"dash": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "-"
		}
		return s
	},
}).ParseFS(templateFS, "templates/bill.html"))

// RenderHTML writes the bill as a half-A4 page with a print button.
func RenderHTML(b *Bill) ([]byte, error) {
	var buf bytes.Buffer
	if err := billTemplate.Execute(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
