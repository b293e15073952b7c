// Package diagnostic implements the parser's error taxonomy: a fluent
// builder for individual diagnostics, a closed catalog of stable ids
// (E001-E050), and a code-frame renderer for terminal output.
package diagnostic

import "github.com/gophlex/phpparser/source"

// AnnotationKind distinguishes a primary error pointer from a supporting
// hint drawn elsewhere in the same frame.
type AnnotationKind int

const (
	Hint AnnotationKind = iota
	Error
)

// Annotation is one labelled span drawn inside a diagnostic's code frame.
type Annotation struct {
	Kind    AnnotationKind
	Message string
	Span    source.Span
}

// Diagnostic is a single reported problem: a stable id, a one-line summary,
// a primary span, zero or more supporting annotations, and an optional
// multi-line note. The zero value is not meaningful; build with New.
type Diagnostic struct {
	ID      string
	Summary string
	Span    source.Span
	Annotations []Annotation
	Note    string
}

// New starts a diagnostic at the given id, summary, and primary span.
func New(id, summary string, span source.Span) *Diagnostic {
	return &Diagnostic{ID: id, Summary: summary, Span: span}
}

// Hint appends a non-error annotation (e.g. "previous declaration here").
func (d *Diagnostic) Hint(message string, span source.Span) *Diagnostic {
	d.Annotations = append(d.Annotations, Annotation{Kind: Hint, Message: message, Span: span})
	return d
}

// Error appends an error-severity annotation (e.g. "try removing this"); its
// span may be the diagnostic's own primary span or any other span.
func (d *Diagnostic) Error(message string, span source.Span) *Diagnostic {
	d.Annotations = append(d.Annotations, Annotation{Kind: Error, Message: message, Span: span})
	return d
}

// Note attaches a trailing multi-line explanation.
func (d *Diagnostic) Note(note string) *Diagnostic {
	d.Note = note
	return d
}

func (d *Diagnostic) Error0() string { return d.ID + ": " + d.Summary }

// Bag accumulates diagnostics across a parse. Diagnostics are appended in
// the order they are raised; the parser keeps going after each one, and
// skips ahead to the next statement boundary only when a statement consumed
// no tokens (see spec.md §7's "accumulate rather than fatal" policy).
type Bag struct {
	items []*Diagnostic
}

func (b *Bag) Add(d *Diagnostic) { b.items = append(b.items, d) }

func (b *Bag) HasErrors() bool { return len(b.items) > 0 }

func (b *Bag) Count() int { return len(b.items) }

func (b *Bag) All() []*Diagnostic { return b.items }
