// Package tmplx wraps text/template with the helpers used by bot message templates.
package tmplx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

var (
	ErrRenderTemplate = errors.New("tmplx: render error")
	ErrParseTemplate  = errors.New("tmplx: parse error")
)

type Template struct {
	tmpl *template.Template
}

type Options struct {
	funcs template.FuncMap
}

type Option func(*Options) error

// markdownEscaper escapes the characters that open an entity in Telegram's legacy Markdown.
var markdownEscaper = strings.NewReplacer(
	`_`, `\_`,
	`*`, `\*`,
	"`", "\\`",
	`[`, `\[`,
)

// Entity bodies are copied verbatim up to their closing character, so an escape
// inside one would be shown. Only the closing characters are rewritten.
var (
	linkTextReplacer = strings.NewReplacer(`]`, `)`)
	linkURLReplacer  = strings.NewReplacer(`)`, `%29`)
)

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"inc":       inc,
		"default":   defaultFunc,
		"json":      jsonFunc,
		"hasPrefix": hasPrefix,
		"markdown":  EscapeMarkdown,
		"linkText":  MarkdownLinkText,
		"linkURL":   MarkdownLinkURL,
	}
}

// WithTemplateFunc adds a single custom template function
func WithTemplateFunc(name string, fn any) Option {
	return func(o *Options) error {
		if fn == nil {
			return fmt.Errorf("template func %q is nil", name)
		}
		o.funcs[name] = fn
		return nil
	}
}

func MustParse(name string, text string, opts ...Option) *Template {
	t, err := Parse(name, text, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse creates a new Template with the given name and text, applying any options
func Parse(name string, text string, args ...Option) (*Template, error) {
	opts := &Options{
		funcs: defaultFuncs(),
	}
	for _, arg := range args {
		if err := arg(opts); err != nil {
			return nil, err
		}
	}

	tmpl, err := template.New(name).
		Option("missingkey=zero").
		Funcs(opts.funcs).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}

	return &Template{tmpl: tmpl}, nil
}

func (t *Template) Render(data any) (string, error) {
	buf := new(bytes.Buffer)
	if err := t.tmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderTemplate, err)
	}
	return buf.String(), nil
}

// MustRender is for templates whose data cannot fail to render.
func (t *Template) MustRender(data any) string {
	s, err := t.Render(data)
	if err != nil {
		panic(err)
	}
	return s
}

// EscapeMarkdown is for text placed outside of any entity.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// MarkdownLinkText makes s safe as the text of an inline link.
func MarkdownLinkText(s string) string {
	return linkTextReplacer.Replace(s)
}

// MarkdownLinkURL makes s safe as the target of an inline link.
func MarkdownLinkURL(s string) string {
	return linkURLReplacer.Replace(s)
}

func inc(v any) int {
	return cast.ToInt(v) + 1
}

func hasPrefix(a, b any) bool {
	return strings.HasPrefix(cast.ToString(a), cast.ToString(b))
}

func defaultFunc(def any, value any) any {
	if value != nil && value != "" {
		return value
	}
	return def
}

func jsonFunc(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
