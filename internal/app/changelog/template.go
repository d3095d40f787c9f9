package changelog

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultTemplateString is the default template used to render a Changelog
// object into Markdown.
const DefaultTemplateString = `# {{ .HeaderPrefix }} {{ .Version }}

{{ range .Sections -}}
{{ if .Title -}}
#### {{ .Title }}

{{ end -}}
{{ range .Prs -}}
* [#{{ .Number }}]({{ .Url }}): {{ .Title }}
{{ end -}}
{{ if .Title }}
{{ end -}}
{{ end -}}
`

// Render executes the given template string (sprig functions available) on the
// changelog and returns the Markdown section, normalized to end with exactly
// one trailing newline.
func (c *Changelog) Render(templateString string) (string, error) {
	changelogTemplate := template.New("changelog").Funcs(sprig.FuncMap())
	changelogTemplate, err := changelogTemplate.Parse(templateString)
	if err != nil {
		return "", fmt.Errorf("can't parse the changelog template: %w", err)
	}
	var body bytes.Buffer
	err = changelogTemplate.Execute(&body, c)
	if err != nil {
		return "", fmt.Errorf("can't execute the changelog template: %w on changelog object: %+v", err, c)
	}
	return strings.TrimRight(body.String(), "\n") + "\n", nil
}
