package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/capgains"
)

//go:embed *.md
var templates embed.FS

// ReportMarkdown renders a capital gains report to a markdown string.
func ReportMarkdown(r *capgains.Report) string {
	view, err := NewReport(r)
	if err != nil {
		return fmt.Sprintf("error preparing report for %d: %v", r.Year(), err)
	}
	return RenderReport(view)
}

// RenderReport renders the Report struct to a markdown string.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_title":   "report_title.md",
		"report_years":   "report_years.md",
		"report_summary": "report_summary.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
