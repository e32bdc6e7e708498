// Package export renders a project plan as Markdown or HTML.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"sync"
	"unicode"

	"launchpad_backend/internal/models"
	"launchpad_backend/internal/workflow"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdown
}

var htmlPage = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;line-height:1.5;padding:0 1rem}</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// ContentType returns the MIME type for format, empty when unsupported.
func ContentType(format string) string {
	switch format {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return ""
}

// Render returns the plan in the requested format.
func Render(project *models.Project, format string) ([]byte, error) {
	md := Markdown(project)
	switch format {
	case FormatMarkdown:
		return []byte(md), nil
	case FormatHTML:
		return HTML(project.Title, md)
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// HTML converts markdown to a standalone page. Raw HTML in the input is
// escaped by goldmark.
func HTML(title, md string) ([]byte, error) {
	var body bytes.Buffer
	if err := getMarkdown().Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var page bytes.Buffer
	err := htmlPage.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return page.Bytes(), nil
}

// Markdown renders the project with its steps in workflow order. Steps without
// content are listed as not started.
func Markdown(project *models.Project) string {
	byKey := make(map[string]models.ProjectStep, len(project.Steps))
	for _, s := range project.Steps {
		byKey[s.StepKey] = s
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", oneLine(project.Title))
	if project.Category != "" {
		fmt.Fprintf(&b, "**Category:** %s\n\n", oneLine(project.Category))
	}
	if project.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(project.Description))
	}

	for _, step := range workflow.All() {
		fmt.Fprintf(&b, "## %d. %s\n\n", step.Order, step.Title)

		saved, ok := byKey[step.Key]
		if !ok || len(saved.Data) == 0 {
			b.WriteString("_Not started._\n\n")
			continue
		}
		if !saved.Completed {
			b.WriteString("_Draft._\n\n")
		}

		var data any
		if err := json.Unmarshal(saved.Data, &data); err != nil {
			b.WriteString("_Content could not be read._\n\n")
			continue
		}
		writeValue(&b, data, 3)
	}

	return b.String()
}

func writeValue(b *strings.Builder, v any, level int) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", min(level, 6)), Humanize(k))
			writeValue(b, val[k], level+1)
		}
	case []any:
		if len(val) == 0 {
			b.WriteString("_None._\n\n")
			return
		}
		for _, item := range val {
			fmt.Fprintf(b, "- %s\n", inline(item))
		}
		b.WriteString("\n")
	default:
		fmt.Fprintf(b, "%s\n\n", inline(val))
	}
}

// inline renders scalars as text and objects as "Key: value" pairs.
func inline(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return oneLine(val)
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("**%s:** %s", Humanize(k), inline(val[k])))
		}
		return strings.Join(parts, "; ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, inline(item))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Humanize turns camelCase or kebab-case keys into "Title case" labels.
func Humanize(key string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for _, r := range key {
		switch {
		case r == '-' || r == '_' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			flush()
			cur = append(cur, unicode.ToLower(r))
		default:
			cur = append(cur, r)
		}
	}
	flush()

	if len(words) == 0 {
		return key
	}
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)
	return strings.Join(words, " ")
}
