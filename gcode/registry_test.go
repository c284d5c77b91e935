package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vacuumKind() *Kind {
	return &Kind{
		Name:     "vacuum on",
		Key:      Key{Letter: 'M', Number: 10},
		Group:    ModalGroupUserDefined,
		Params:   "P",
		Priority: PriorityUserDefined,
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()

	k := r.Lookup(Word{W: 'G', Arg: 1})
	require.NotNil(t, k)
	assert.Equal(t, "linear move", k.Name)
	assert.Equal(t, ModalGroupMotion, k.Group)

	k = r.Lookup(Word{W: 'G', Arg: 90.1})
	require.NotNil(t, k)
	assert.Equal(t, ModalGroupArcDistanceMode, k.Group)

	k = r.Lookup(Word{W: 'F', Arg: 1500})
	require.NotNil(t, k)
	assert.Equal(t, ModalGroupFeedRate, k.Group)
	assert.Equal(t, "F", k.String())

	k = r.Lookup(Word{W: 'G', Arg: 59.3})
	require.NotNil(t, k)
	assert.Equal(t, "select coordinate system 9", k.Name)

	assert.Nil(t, r.Lookup(Word{W: 'M', Arg: 10}))
	assert.Nil(t, r.Lookup(Word{W: 'X', Arg: 1}))
	assert.Nil(t, r.Lookup(Word{W: 'G', Arg: 1.5}))
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry().Clone()
	require.NoError(t, r.Register(vacuumKind()))
	assert.NotNil(t, r.Lookup(Word{W: 'M', Arg: 10}))

	// the builtin set is unchanged
	assert.Nil(t, defaultRegistry().Lookup(Word{W: 'M', Arg: 10}))

	assert.Error(t, r.Register(vacuumKind()))
	assert.Error(t, r.Register(&Kind{Name: "dup", Key: Key{Letter: 'G', Number: 1}}))
	assert.Error(t, r.Register(&Kind{Name: "program", Key: Key{Letter: 'O', Number: 1}}))
	assert.Error(t, r.Register(&Kind{Name: "bad param", Key: Key{Letter: 'M', Number: 100}, Params: "$"}))
	assert.Error(t, r.Register(&Kind{Name: "feed", Key: Key{Letter: 'F'}, AnyValue: true}))

	err := r.Register(&Kind{Name: "extra system", Key: Key{Letter: 'G', Number: 59, Sub: 4}, Group: ModalGroupCoordinateSystem})
	assert.ErrorContains(t, err, "G59.4 is not a work coordinate system")
	assert.Error(t, r.Register(&Kind{Name: "extra system", Key: Key{Letter: 'G', Number: 60}, Group: ModalGroupCoordinateSystem}))
	assert.Nil(t, r.Lookup(Word{W: 'G', Arg: 59.4}))

	b := NewBlock(r, Word{W: 'M', Arg: 10}, Word{W: 'P', Arg: 1})
	require.Len(t, b.GCodes(), 1)
	assert.Equal(t, "M10 P1", b.GCodes()[0].String())
	assert.Equal(t, PriorityUserDefined, b.GCodes()[0].Priority())
}

func TestRegistry_Kinds(t *testing.T) {
	kinds := NewRegistry().Kinds()
	require.NotEmpty(t, kinds)
	assert.Equal(t, byte('F'), kinds[0].Key.Letter)

	for i := 1; i < len(kinds); i++ {
		a, b := kinds[i-1].Key, kinds[i].Key
		if a.Letter == b.Letter && a.Number == b.Number {
			assert.Less(t, a.Sub, b.Sub)
		}
	}
}

func TestCoordSystemIndex(t *testing.T) {
	for _, tc := range []struct {
		key Key
		cs  int
		ok  bool
	}{
		{Key{Letter: 'G', Number: 54}, 1, true},
		{Key{Letter: 'G', Number: 58}, 5, true},
		{Key{Letter: 'G', Number: 59}, 6, true},
		{Key{Letter: 'G', Number: 59, Sub: 3}, 9, true},
		{Key{Letter: 'G', Number: 59, Sub: 4}, 0, false},
		{Key{Letter: 'G', Number: 54, Sub: 1}, 0, false},
		{Key{Letter: 'G', Number: 53}, 0, false},
		{Key{Letter: 'M', Number: 54}, 0, false},
	} {
		cs, ok := coordSystemIndex(tc.key)
		assert.Equal(t, tc.cs, cs, tc.key.String())
		assert.Equal(t, tc.ok, ok, tc.key.String())
	}
}
