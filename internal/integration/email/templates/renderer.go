// Package templates renders reminder emails from embedded templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/epiwatch/backend/internal/domain/entity"
)

//go:embed *.html *.txt
var templateFS embed.FS

const submissionReminder = "submission_reminder"

// Renderer holds the parsed HTML and plain-text templates.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{html: html, text: text}, nil
}

// SubmissionReminder renders both bodies of a missing-submission reminder.
func (r *Renderer) SubmissionReminder(reminder entity.SubmissionReminder) (html, text string, err error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := r.html.ExecuteTemplate(&htmlBuf, submissionReminder+".html", reminder); err != nil {
		return "", "", fmt.Errorf("failed to render %s.html: %w", submissionReminder, err)
	}
	if err := r.text.ExecuteTemplate(&textBuf, submissionReminder+".txt", reminder); err != nil {
		return "", "", fmt.Errorf("failed to render %s.txt: %w", submissionReminder, err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}
