package diagnostic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gophlex/phpparser/source"
)

// RenderOptions controls the terminal presentation of a rendered report;
// it mirrors the CLI flags in spec.md §6 one-to-one.
type RenderOptions struct {
	Colored bool
	ASCII   bool
	Origin  string // filename, or "input" for stdin
}

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorBold   = "\x1b[1m"
	colorReset  = "\x1b[0m"
)

type frameChars struct {
	vbar, corner, arrow, hbar string
}

func charsFor(ascii bool) frameChars {
	if ascii {
		return frameChars{vbar: "|", corner: "-->", arrow: "^", hbar: "-"}
	}
	return frameChars{vbar: "│", corner: "╭─>", arrow: "^", hbar: "─"}
}

// Render formats a single diagnostic as a multi-line report with a code
// frame drawn from src, matching the "id: summary" + gutter + pointer shape
// spec.md §4.7 describes.
func Render(d *Diagnostic, src *source.Source, opts RenderOptions) string {
	c := charsFor(opts.ASCII)
	var b strings.Builder

	header := fmt.Sprintf("%s: %s", d.ID, d.Summary)
	if opts.Colored {
		header = colorBold + colorRed + header + colorReset
	}
	b.WriteString(header)
	b.WriteByte('\n')

	origin := opts.Origin
	if origin == "" {
		origin = "input"
	}
	fmt.Fprintf(&b, "  %s %s:%d:%d\n", c.corner, origin, d.Span.Line, d.Span.Column)

	writeFrame(&b, src, d.Span, d.Span.Line, opts, c, colorRed)
	for _, a := range d.Annotations {
		color := colorYellow
		if a.Kind == Error {
			color = colorRed
		}
		b.WriteByte('\n')
		writeAnnotation(&b, src, a, opts, c, color)
	}

	if d.Note != "" {
		b.WriteByte('\n')
		note := "note: " + d.Note
		if opts.Colored {
			note = colorBlue + note + colorReset
		}
		b.WriteString(note)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeFrame(b *strings.Builder, src *source.Source, span source.Span, line int, opts RenderOptions, c frameChars, color string) {
	gutter := strconv.Itoa(line)
	pad := strings.Repeat(" ", len(gutter))
	lineText := ""
	if src != nil {
		lineText = src.LineText(line)
	}
	fmt.Fprintf(b, "%s %s\n", pad, c.vbar)
	fmt.Fprintf(b, "%s %s %s\n", gutter, c.vbar, lineText)
	fmt.Fprintf(b, "%s %s ", pad, c.vbar)
	b.WriteString(strings.Repeat(" ", span.Column))
	pointer := strings.Repeat(c.arrow, max1(span.Length))
	if opts.Colored {
		pointer = color + pointer + colorReset
	}
	b.WriteString(pointer)
	b.WriteByte('\n')
}

func writeAnnotation(b *strings.Builder, src *source.Source, a Annotation, opts RenderOptions, c frameChars, color string) {
	writeFrame(b, src, a.Span, a.Span.Line, opts, c, color)
	msg := a.Message
	if opts.Colored {
		msg = color + msg + colorReset
	}
	gutter := strconv.Itoa(a.Span.Line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(b, "%s %s %s%s\n", pad, c.vbar, strings.Repeat(" ", a.Span.Column), msg)
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// RenderAll renders every diagnostic in a Bag, separated by a blank line,
// in report order.
func RenderAll(bag *Bag, src *source.Source, opts RenderOptions) string {
	var parts []string
	for _, d := range bag.All() {
		parts = append(parts, Render(d, src, opts))
	}
	return strings.Join(parts, "\n")
}
