package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b byte) Address {
	var a Address
	a[len(a)-1] = b
	return a
}

func TestAddressLess(t *testing.T) {
	a, b := addr(1), addr(2)
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}

func TestParseAddressRoundTrip(t *testing.T) {
	a := addr(0xAB)
	parsed, err := ParseAddress(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestParseAddressInvalidLength(t *testing.T) {
	_, err := ParseAddress("0x1234")
	assert.Error(t, err)
}

func TestAmountArithmetic(t *testing.T) {
	a := NewAmount(10)
	b := NewAmount(4)

	assert.Equal(t, "14", a.Add(b).String())
	assert.Equal(t, "6", a.Sub(b).String())
	assert.True(t, a.Cmp(b) > 0)
	assert.Equal(t, b, Min(a, b))
}

func TestAmountZeroValueIsZero(t *testing.T) {
	var a Amount
	assert.True(t, a.IsZero())
	assert.False(t, a.IsPositive())
	assert.Equal(t, "0", a.String())
}

func TestParseAmountRoundTrip(t *testing.T) {
	a, ok := ParseAmount("123456789012345678901234567890")
	assert.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", a.String())
}

func TestParseAmountRejectsInvalid(t *testing.T) {
	_, ok := ParseAmount("not-a-number")
	assert.False(t, ok)

	_, ok = ParseAmount("-5")
	assert.False(t, ok)
}

func TestMaxDominatesLargeAmounts(t *testing.T) {
	huge := NewAmountFromBigInt(Max.BigInt())
	assert.Equal(t, 0, Max.Cmp(huge))
	assert.True(t, Max.Cmp(NewAmount(1)) > 0)
}

func TestNegativeInputsClampToZero(t *testing.T) {
	assert.True(t, NewAmount(-5).IsZero())
	assert.True(t, NewAmountFromBigInt(nil).IsZero())
}

func TestNodeOrderingRealBeforePseudo(t *testing.T) {
	real := Real(addr(1))
	pseudo := Pseudo(addr(1), addr(2))
	assert.True(t, real.Less(pseudo))
	assert.False(t, pseudo.Less(real))
}

func TestNodeOrderingWithinKind(t *testing.T) {
	p1 := Pseudo(addr(1), addr(9))
	p2 := Pseudo(addr(2), addr(0))
	assert.True(t, p1.Less(p2))

	p3 := Pseudo(addr(1), addr(1))
	p4 := Pseudo(addr(1), addr(2))
	assert.True(t, p3.Less(p4))
}

func TestNodeEqualityIsComparable(t *testing.T) {
	a := Pseudo(addr(1), addr(2))
	b := Pseudo(addr(1), addr(2))
	assert.Equal(t, a, b)

	set := map[Node]bool{a: true}
	assert.True(t, set[b])
}

func TestEdgeKey(t *testing.T) {
	e := Edge{From: addr(1), To: addr(2), Token: addr(3), Capacity: NewAmount(5)}
	assert.Equal(t, EdgeKey{From: addr(1), To: addr(2), Token: addr(3)}, e.Key())
}
