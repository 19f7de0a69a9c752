package combo

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/numerology"
)

//go:embed templates/combo.html.tmpl
var templateFS embed.FS

var comboTemplate = template.Must(template.ParseFS(templateFS, "templates/combo.html.tmpl"))

// RenderedSection is one generated section ready for the template.
type RenderedSection struct {
	Key        string
	Title      string
	Paragraphs []string
}

type documentView struct {
	Name        string
	BirthDate   string
	Sign        numerology.Sign
	NameNumber  int
	DateNumber  int
	Destiny     int
	Sections    []RenderedSection
	GeneratedAt string
}

// Paragraphs splits model text on blank lines and drops empty chunks.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n\n")
	return lo.FilterMap(parts, func(p string, _ int) (string, bool) {
		p = strings.Join(strings.Fields(p), " ")
		return p, p != ""
	})
}

// RenderDocument wraps the sections into the decorative template. Model
// text is escaped.
func RenderDocument(r *numerology.Reading, sections []RenderedSection, at time.Time) (string, error) {
	var buf bytes.Buffer
	err := comboTemplate.Execute(&buf, documentView{
		Name:        r.Name,
		BirthDate:   r.BirthDateString(),
		Sign:        r.Sign,
		NameNumber:  r.NameNumber,
		DateNumber:  r.DateNumber,
		Destiny:     r.Pythagorean.Destiny,
		Sections:    sections,
		GeneratedAt: at.Format("02/01/2006"),
	})
	if err != nil {
		return "", fmt.Errorf("render combo document: %w", err)
	}
	return buf.String(), nil
}

var codeFence = regexp.MustCompile("(?s)^\\s*```[a-zA-Z]*\\s*\\n(.*?)\\n?\\s*```\\s*$")

// StripCodeFences removes a markdown code fence wrapping the whole text.
func StripCodeFences(text string) string {
	if m := codeFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
