package parser

import "github.com/gophlex/phpparser/lexer"

// reserved holds every keyword that can never be used as a class, function,
// constant, or goto-label name. Built from lexer.Keywords minus the soft
// keywords, which remain usable as ordinary names outside their special
// grammatical position.
var reserved = func() map[string]bool {
	m := make(map[string]bool, len(lexer.Keywords))
	for word := range lexer.Keywords {
		if !lexer.SoftKeywords[word] {
			m[word] = true
		}
	}
	return m
}()

// IsReserved reports whether lower (already ASCII-lowercased) is a hard
// reserved word: it can never be repurposed as a name, regardless of
// position.
func IsReserved(lower string) bool {
	return reserved[lower]
}

// IsSoftReserved reports whether lower is a soft keyword: reserved only in
// the grammatical position that gives it meaning (e.g. `enum` starting a
// declaration), usable as a name everywhere else.
func IsSoftReserved(lower string) bool {
	return lexer.SoftKeywords[lower]
}
