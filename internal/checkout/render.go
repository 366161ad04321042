package checkout

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/noah-isme/farmer-shop/internal/pricing"
)

//go:embed invoice.html.tmpl
var invoiceTemplate string

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money":   pricing.Format,
	"percent": pricing.Percent,
}).Parse(invoiceTemplate))

// Render produces the self-contained invoice markup. Shop and product names
// are HTML-escaped.
func Render(inv Invoice) (string, error) {
	var b strings.Builder
	if err := invoiceTmpl.Execute(&b, inv); err != nil {
		return "", err
	}
	return b.String(), nil
}
