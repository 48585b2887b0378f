package gui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	highlightStyle     = "monokai"
	highlightFormatter = "terminal16m"
)

// highlight returns source with ANSI syntax colors for language. On any
// failure the source is returned unchanged.
func highlight(source, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get(highlightFormatter)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var out strings.Builder
	if err := formatter.Format(&out, style, iterator); err != nil {
		return source
	}

	result := out.String()
	// Some lexers append a newline the input did not have.
	if !strings.HasSuffix(source, "\n") {
		result = strings.TrimSuffix(result, "\n")
	}
	return result
}

// colorizeJSON highlights a JSON document or fragment.
func colorizeJSON(jsonStr string) string {
	return highlight(jsonStr, "json")
}

// colorizeSVG highlights SVG markup.
func colorizeSVG(svg string) string {
	return highlight(svg, "xml")
}
