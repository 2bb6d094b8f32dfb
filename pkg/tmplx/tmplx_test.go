package tmplx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("inc for one based numbering", func(t *testing.T) {
		tmpl := MustParse("list", `{{range $i, $v := .}}{{inc $i}}) {{$v}}
{{end}}`)
		out, err := tmpl.Render([]string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, "1) a\n2) b\n", out)
	})

	t.Run("default", func(t *testing.T) {
		tmpl := MustParse("default", `{{default "none" .Name}}`)
		assert.Equal(t, "none", tmpl.MustRender(map[string]any{}))
		assert.Equal(t, "x", tmpl.MustRender(map[string]any{"Name": "x"}))
	})

	t.Run("json and hasPrefix", func(t *testing.T) {
		tmpl := MustParse("json", `{{json .}}{{if hasPrefix . "/add"}} add{{end}}`)
		assert.Equal(t, `"/add x" add`, tmpl.MustRender("/add x"))
	})

	t.Run("markdown escape", func(t *testing.T) {
		tmpl := MustParse("md", `{{markdown .}}`)
		assert.Equal(t, `Mi\_Band \*5\* \[new\]`, tmpl.MustRender("Mi_Band *5* [new]"))
	})

	t.Run("inline link", func(t *testing.T) {
		tmpl := MustParse("link", `[{{linkText .Name}}]({{linkURL .URL}})`)
		out := tmpl.MustRender(map[string]string{
			"Name": "Mi_Band *5* [new]",
			"URL":  "https://x.test/a_(b)?srno=s_1",
		})
		assert.Equal(t, `[Mi_Band *5* [new)](https://x.test/a_(b%29?srno=s_1)`, out)
	})

	t.Run("custom func", func(t *testing.T) {
		tmpl, err := Parse("custom", `{{shout .}}`, WithTemplateFunc("shout", func(s string) string { return s + "!" }))
		require.NoError(t, err)
		assert.Equal(t, "hi!", tmpl.MustRender("hi"))
	})
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	_, err := Parse("bad", `{{.Name`)
	assert.ErrorIs(t, err, ErrParseTemplate)

	_, err = Parse("nilfunc", `x`, WithTemplateFunc("f", nil))
	assert.Error(t, err)

	assert.Panics(t, func() { MustParse("bad", `{{if}}`) })
}

func TestRenderError(t *testing.T) {
	t.Parallel()
	tmpl := MustParse("call", `{{call .}}`)
	_, err := tmpl.Render(42)
	assert.ErrorIs(t, err, ErrRenderTemplate)
}
