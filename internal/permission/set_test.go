package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHas(t *testing.T) {
	held := NewSet(CreateUser, DeleteContract)

	for _, code := range All() {
		want := code == CreateUser || code == DeleteContract
		assert.Equal(t, want, Has(held, code), code)
	}
}

func TestHas_ExactMatchOnly(t *testing.T) {
	held := NewSet(ViewFinancials)

	assert.False(t, Has(held, ViewAllFinancials))
	assert.False(t, Has(held, "visualizar_financeiros "))
	assert.False(t, Has(held, "VISUALIZAR_FINANCEIROS"))
	assert.True(t, Has(held, ViewFinancials))
}

func TestEmptyListSemantics(t *testing.T) {
	held := NewSet(CreateUser)

	assert.True(t, HasAll(held, []string{}), "empty list must be vacuously true")
	assert.True(t, HasAll(held, nil))
	assert.False(t, HasAny(held, []string{}), "empty list must be false")
	assert.False(t, HasAny(held, nil))

	// a principal without permissions still satisfies the vacuous case
	assert.True(t, HasAll(NewSet(), nil))
}

func TestAbsentPrincipalFailsClosed(t *testing.T) {
	var absent Set

	tests := []struct {
		name string
		got  bool
	}{
		{"has", Has(absent, CreateUser)},
		{"has any", HasAny(absent, []string{CreateUser, ViewUsers})},
		{"has any empty", HasAny(absent, nil)},
		{"has all", HasAll(absent, []string{CreateUser})},
		{"has all empty", HasAll(absent, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.got)
		})
	}
}

func TestHasAnyAndAll(t *testing.T) {
	held := NewSet(ViewContracts, EditContract)

	assert.True(t, HasAny(held, []string{DeleteContract, EditContract}))
	assert.False(t, HasAny(held, []string{DeleteContract, CreateUser}))
	assert.True(t, HasAll(held, []string{ViewContracts, EditContract}))
	assert.False(t, HasAll(held, []string{ViewContracts, DeleteContract}))
}

func TestSetHelpers(t *testing.T) {
	s := NewSet("b", "a", "b")

	assert.Equal(t, []string{"a", "b"}, s.Codes())

	c := s.Clone()
	delete(c, "a")
	assert.True(t, s.Contains("a"), "clone must not share storage")
	assert.Nil(t, Set(nil).Clone())
}

func TestKnownAndName(t *testing.T) {
	assert.Len(t, All(), len(names))

	for _, code := range All() {
		assert.True(t, Known(code), code)
		assert.NotEqual(t, code, Name(code))
	}

	assert.False(t, Known("apagar_tudo"))
	assert.Equal(t, "apagar_tudo", Name("apagar_tudo"))
}
