package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, kind := range AllKinds() {
		parsed, err := ParseKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseKind("widget")
	assert.Error(t, err)
}

func TestFrozenEqual_IgnoresSoftDeleteTriad(t *testing.T) {
	now := time.Now()
	a := NewPage("w1", "u1", "Alice", "Origins", "The founding of the realm.")
	a.ID = "p1"
	a.CreatedAt = now

	b := NewPage("w1", "u1", "Alice", "Origins", "The founding of the realm.")
	b.ID = "p1"
	b.CreatedAt = now
	b.SoftDelete("u2")

	assert.True(t, a.FrozenEqual(b))
}

func TestFrozenEqual_DetectsFieldChanges(t *testing.T) {
	now := time.Now()
	base := func() *Page {
		p := NewPage("w1", "u1", "Alice", "Origins", "The founding of the realm.")
		p.ID = "p1"
		p.CreatedAt = now
		return p
	}

	changed := base()
	changed.Title = "Origins, Revised"
	assert.False(t, base().FrozenEqual(changed))

	changed = base()
	changed.Body = "A different founding."
	assert.False(t, base().FrozenEqual(changed))

	changed = base()
	changed.Summary = "short"
	assert.False(t, base().FrozenEqual(changed))

	changed = base()
	changed.AuthorID = "u9"
	assert.False(t, base().FrozenEqual(changed))
}

func TestFrozenEqual_KindSpecificFields(t *testing.T) {
	now := time.Now()
	a := NewCharacter("w1", "u1", "Alice", "Mira", "A wandering cartographer.", "Mira of the Vale")
	a.ID = "c1"
	a.CreatedAt = now
	a.PersonalityTraits = []string{"curious", "stubborn"}

	b := NewCharacter("w1", "u1", "Alice", "Mira", "A wandering cartographer.", "Mira of the Vale")
	b.ID = "c1"
	b.CreatedAt = now
	b.PersonalityTraits = []string{"curious", "stubborn"}

	assert.True(t, a.FrozenEqual(b))

	b.PersonalityTraits = []string{"curious"}
	assert.False(t, a.FrozenEqual(b))
}

func TestFrozenEqual_DifferentKinds(t *testing.T) {
	p := NewPage("w1", "u1", "Alice", "Origins", "The founding of the realm.")
	e := NewEssay("w1", "u1", "Alice", "Origins", "The founding of the realm.", "")
	assert.False(t, p.FrozenEqual(e))
}

func TestSoftDeleteRestore(t *testing.T) {
	p := NewPage("w1", "u1", "Alice", "Origins", "The founding of the realm.")

	p.SoftDelete("u2")
	assert.True(t, p.IsDeleted)
	require.NotNil(t, p.DeletedAt)
	assert.Equal(t, "u2", p.DeletedBy)

	p.Restore()
	assert.False(t, p.IsDeleted)
	assert.Nil(t, p.DeletedAt)
	assert.Empty(t, p.DeletedBy)
}
