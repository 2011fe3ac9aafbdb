package report

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/offer.html.tmpl
var templateFS embed.FS

var offerTemplate = template.Must(template.ParseFS(templateFS, "templates/offer.html.tmpl"))

type htmlView struct {
	view
	Subtitle  string
	Validity  string
	LogoSrc   template.URL
	TermsHTML template.HTML
}

func renderHTML(v view) ([]byte, error) {
	hv := htmlView{
		view:     v,
		Subtitle: subtitle,
		Validity: validityNotice,
	}
	if len(v.Logo) > 0 {
		hv.LogoSrc = template.URL("data:" + v.LogoMIME + ";base64," + base64.StdEncoding.EncodeToString(v.Logo))
	}
	if v.Terms != nil {
		hv.TermsHTML = termsHTML(v.Terms)
	}

	var buf bytes.Buffer
	if err := offerTemplate.Execute(&buf, hv); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// termsHTML escapes every line and joins them with <br/>.
func termsHTML(lines []string) template.HTML {
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = template.HTMLEscapeString(l)
	}
	return template.HTML(strings.Join(escaped, "<br/>"))
}
