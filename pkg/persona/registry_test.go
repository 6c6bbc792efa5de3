package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryLookup(t *testing.T) {
	r := NewDefaultRegistry()

	for _, id := range []string{"gandhi", "einstein", "cleopatra"} {
		p, ok := r.Lookup(id)
		require.True(t, ok, id)
		assert.NotEmpty(t, p.Instruction)
		assert.NotEmpty(t, p.Greeting)
		assert.GreaterOrEqual(t, len(p.Fallbacks), 2)
		assert.LessOrEqual(t, len(p.Fallbacks), 4)
		assert.GreaterOrEqual(t, len(p.ShortDefault), 50)
		assert.NotEmpty(t, p.Voice.VoiceId)
	}

	_, ok := r.Lookup("napoleon")
	assert.False(t, ok)
}

func TestResolveFallsBackToDefault(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, "einstein", r.Resolve("einstein").Id)
	assert.Equal(t, DefaultID, r.Resolve("napoleon").Id)
}

func TestAllKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry(
		Persona{Id: "b"},
		Persona{Id: "a"},
		Persona{Id: "b", Name: "override"},
	)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Id)
	assert.Equal(t, "override", all[0].Name)
	assert.Equal(t, "a", all[1].Id)
}

func TestDefaultPanicsWhenMissing(t *testing.T) {
	r := NewRegistry(Persona{Id: "einstein"})
	assert.Panics(t, func() { r.Default() })
}
