package service

import (
	"bytes"
	"html/template"
	"strings"
)

var defaultBody = template.Must(template.New("offer-email").Parse(`<html>
<body>
<p>Dear {{.Customer}},</p>
{{- if .Message}}
<p>{{.Message}}</p>
{{- else}}
<p>Please find attached our commercial offer for the project: <strong>{{.Project}}</strong>.</p>
<p>If you have any questions, please do not hesitate to contact us.</p>
{{- end}}
<p>Best regards,<br/>{{.Company}}</p>
</body>
</html>
`))

type emailBody struct {
	Customer string
	Project  string
	Company  string
	Message  template.HTML
}

// buildEmailBody renders the HTML body. A custom message replaces the
// standard paragraphs; its line breaks are kept.
func buildEmailBody(customer, project, company, message string) (string, error) {
	if strings.TrimSpace(customer) == "" {
		customer = "Customer"
	}
	data := emailBody{Customer: customer, Project: project, Company: company}
	if m := strings.TrimSpace(message); m != "" {
		lines := strings.Split(strings.ReplaceAll(m, "\r\n", "\n"), "\n")
		for i, l := range lines {
			lines[i] = template.HTMLEscapeString(l)
		}
		data.Message = template.HTML(strings.Join(lines, "<br/>"))
	}

	var buf bytes.Buffer
	if err := defaultBody.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
