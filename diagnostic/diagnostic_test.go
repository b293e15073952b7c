package diagnostic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gophlex/phpparser/diagnostic"
	"github.com/gophlex/phpparser/source"
)

func TestDiagnostic_BuilderChainsAnnotationsAndNote(t *testing.T) {
	span := source.Span{Line: 3, Column: 4}
	d := diagnostic.New("E010", "multiple visibility modifiers", span).
		Hint("first modifier here", source.Span{Line: 3, Column: 0}).
		Error("conflicting modifier here", source.Span{Line: 3, Column: 8}).
		Note("a member may declare at most one visibility modifier")

	require.Len(t, d.Annotations, 2)
	assert.Equal(t, diagnostic.Hint, d.Annotations[0].Kind)
	assert.Equal(t, diagnostic.Error, d.Annotations[1].Kind)
	assert.Equal(t, "a member may declare at most one visibility modifier", d.Note)
	assert.Equal(t, "E010: multiple visibility modifiers", d.Error0())
}

func TestBag_AccumulatesInRaisedOrder(t *testing.T) {
	bag := &diagnostic.Bag{}
	assert.False(t, bag.HasErrors())
	assert.Equal(t, 0, bag.Count())

	bag.Add(diagnostic.UnexpectedToken("`}`", "`;`", source.Span{}))
	bag.Add(diagnostic.DuplicateModifier("public", source.Span{}, source.Span{}))

	require.True(t, bag.HasErrors())
	require.Equal(t, 2, bag.Count())
	assert.Equal(t, "E002", bag.All()[0].ID)
	assert.Equal(t, "E011", bag.All()[1].ID)
}

func TestCatalog_EnumConstructorAndMagicMethodAreDistinctIDs(t *testing.T) {
	ctor := diagnostic.ConstructorOnEnum("Suit", source.Span{}, source.Span{})
	magic := diagnostic.MagicMethodOnEnum("Suit", "__clone", source.Span{}, source.Span{})
	assert.NotEqual(t, ctor.ID, magic.ID)
	assert.Contains(t, ctor.Summary, "Suit")
	assert.Contains(t, magic.Summary, "__clone")
}
