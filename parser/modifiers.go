package parser

import (
	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/diagnostic"
	"github.com/gophlex/phpparser/source"
)

// memberKind identifies what a modifier run is qualifying, so
// validateModifiers can consult the right allowed-set.
type memberKind int

const (
	memberClass memberKind = iota
	memberClassConst
	memberInterfaceConst
	memberProperty
	memberPromotedProperty
	memberMethod
	memberInterfaceMethod
	memberEnumMethod
)

var allowedByKind = map[memberKind]map[ast.Modifier]bool{
	memberClass: {ast.ModFinal: true, ast.ModAbstract: true, ast.ModReadonly: true},
	memberClassConst: {
		ast.ModPublic: true, ast.ModProtected: true, ast.ModPrivate: true, ast.ModFinal: true,
	},
	memberInterfaceConst: {ast.ModPublic: true, ast.ModFinal: true},
	memberProperty: {
		ast.ModPublic: true, ast.ModProtected: true, ast.ModPrivate: true,
		ast.ModStatic: true, ast.ModReadonly: true,
	},
	memberPromotedProperty: {
		ast.ModPublic: true, ast.ModProtected: true, ast.ModPrivate: true, ast.ModReadonly: true,
	},
	memberMethod: {
		ast.ModPublic: true, ast.ModProtected: true, ast.ModPrivate: true,
		ast.ModFinal: true, ast.ModStatic: true, ast.ModAbstract: true,
	},
	memberInterfaceMethod: {ast.ModPublic: true, ast.ModStatic: true},
	memberEnumMethod: {
		ast.ModPublic: true, ast.ModProtected: true, ast.ModPrivate: true,
		ast.ModFinal: true, ast.ModStatic: true,
	},
}

var modifierNames = map[ast.Modifier]string{
	ast.ModPublic: "public", ast.ModProtected: "protected", ast.ModPrivate: "private",
	ast.ModStatic: "static", ast.ModReadonly: "readonly", ast.ModFinal: "final",
	ast.ModAbstract: "abstract",
}

var memberKindNames = map[memberKind]string{
	memberClass: "classes", memberClassConst: "constants",
	memberInterfaceConst: "interface constants", memberProperty: "properties",
	memberPromotedProperty: "promoted properties", memberMethod: "class methods",
	memberInterfaceMethod: "interface methods", memberEnumMethod: "enum methods",
}

func allowedModifierList(kind memberKind) string {
	order := []ast.Modifier{ast.ModPublic, ast.ModProtected, ast.ModPrivate, ast.ModFinal, ast.ModStatic, ast.ModAbstract, ast.ModReadonly}
	allowed := allowedByKind[kind]
	var names []string
	for _, m := range order {
		if allowed[m] {
			names = append(names, "`"+modifierNames[m]+"`")
		}
	}
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
			if i == len(names)-1 {
				out += "and "
			}
		}
		out += n
	}
	return out
}

// validateModifiers checks a parsed ModifierGroup against the invariants
// spec.md §3 and §7 name: at most one visibility modifier, never both final
// and abstract, and only the modifiers a given member kind allows.
func validateModifiers(g *ast.ModifierGroup, kind memberKind, bag *diagnostic.Bag) {
	if g == nil {
		return
	}
	allowed := allowedByKind[kind]
	seen := map[ast.Modifier]source.Span{}
	var firstVisibility *ast.ModifierEntry
	var finalEntry, abstractEntry *ast.ModifierEntry

	for i := range g.Entries {
		e := &g.Entries[i]
		if prevSpan, dup := seen[e.Modifier]; dup {
			bag.Add(diagnostic.DuplicateModifier(modifierNames[e.Modifier], prevSpan, e.Span))
			continue
		}
		seen[e.Modifier] = e.Span

		switch e.Modifier {
		case ast.ModPublic, ast.ModProtected, ast.ModPrivate:
			if firstVisibility != nil {
				bag.Add(diagnostic.MultipleVisibilityModifiers(modifierNames[firstVisibility.Modifier], modifierNames[e.Modifier], firstVisibility.Span, e.Span))
			} else {
				firstVisibility = e
			}
		case ast.ModFinal:
			finalEntry = e
		case ast.ModAbstract:
			abstractEntry = e
		}

		if !allowed[e.Modifier] {
			bag.Add(diagnostic.ModifierNotAllowed(modifierNames[e.Modifier], memberKindNames[kind], allowedModifierList(kind), e.Span))
		}
	}

	if finalEntry != nil && abstractEntry != nil {
		bag.Add(diagnostic.FinalAndAbstract(finalEntry.Span, abstractEntry.Span))
	}
	if kind == memberClassConst && finalEntry != nil && firstVisibility != nil && firstVisibility.Modifier == ast.ModPrivate {
		bag.Add(diagnostic.FinalPrivateConstant(firstVisibility.Span, finalEntry.Span))
	}
	if kind == memberClassConst {
		if s, ok := seen[ast.ModStatic]; ok {
			bag.Add(diagnostic.StaticOnConstant(s))
		}
		if s, ok := seen[ast.ModReadonly]; ok {
			bag.Add(diagnostic.ReadonlyOnConstant(s))
		}
	}
	if kind == memberProperty || kind == memberPromotedProperty {
		if staticSpan, hasStatic := seen[ast.ModStatic]; hasStatic {
			if readonlySpan, hasReadonly := seen[ast.ModReadonly]; hasReadonly {
				bag.Add(diagnostic.StaticReadonlyProperty(staticSpan, readonlySpan))
			}
		}
	}
}
