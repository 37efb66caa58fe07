package domain

import "math/big"

// Amount is spec's TokenAmount: a non-negative arbitrary-precision integer,
// large enough to hold Ethereum-scale token balances that do not fit in a
// 64-bit word (spec.md §3, §9 "Big integers"). The zero value is a valid
// zero amount.
type Amount struct {
	v *big.Int
}

// Zero is the additive identity.
var Zero = Amount{}

// Max is the sentinel described by spec.md §3: any value strictly larger
// than any reachable capacity. Trust amounts are assumed to fit a uint256
// (the Ethereum token convention), so 2^256-1 dominates every real balance
// and is safe to use as the initial bottleneck of an augmenting path.
var Max = Amount{v: maxUint256()}

func maxUint256() *big.Int {
	one := big.NewInt(1)
	max := new(big.Int).Lsh(one, 256)
	return max.Sub(max, one)
}

// ParseAmount parses a base-10 string into an Amount. It reports false if
// s is not a valid non-negative integer.
func ParseAmount(s string) (Amount, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return Zero, false
	}
	return Amount{v: v}, true
}

// NewAmount builds an Amount from a non-negative int64.
func NewAmount(v int64) Amount {
	if v < 0 {
		v = 0
	}
	return Amount{v: big.NewInt(v)}
}

// NewAmountFromBigInt copies a big.Int into an Amount. A nil or negative
// input is treated as zero.
func NewAmountFromBigInt(v *big.Int) Amount {
	if v == nil || v.Sign() <= 0 {
		return Zero
	}
	return Amount{v: new(big.Int).Set(v)}
}

func (a Amount) big() *big.Int {
	if a.v == nil {
		return big.NewInt(0)
	}
	return a.v
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{v: new(big.Int).Add(a.big(), b.big())}
}

// Sub returns a - b. On well-formed inputs the invariant a >= b holds; the
// caller (the flow solver, §4.2.4) is responsible for treating a negative
// result as an internal inconsistency rather than silently clamping it.
func (a Amount) Sub(b Amount) Amount {
	return Amount{v: new(big.Int).Sub(a.big(), b.big())}
}

// Cmp returns -1, 0 or +1 as a is less than, equal to, or greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.big().Cmp(b.big())
}

// Min returns the smaller of a and b.
func Min(a, b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.big().Sign() == 0
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.big().Sign() > 0
}

// IsNegative reports whether the amount is strictly less than zero — only
// possible as a transient value while detecting an internal inconsistency,
// never as a value the core hands to a caller.
func (a Amount) IsNegative() bool {
	return a.big().Sign() < 0
}

// String renders the amount in base 10.
func (a Amount) String() string {
	return a.big().String()
}

// BigInt returns a copy of the underlying big.Int, safe for the caller to
// mutate.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.big())
}
