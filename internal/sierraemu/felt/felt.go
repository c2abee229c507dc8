// Package felt implements arithmetic over the 252-bit StarkNet prime field.
//
// The shape of this type (a modulus held once, elements normalized on
// construction, big.Int-backed arithmetic) is adapted from the core field
// implementation this module shipped with originally; that version took an
// arbitrary modulus per Field instance, but every felt in a libfunc program
// lives in exactly one field, so Element here is a plain value type closed
// over a package-level modulus instead of carrying a *Field pointer around.
package felt

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Modulus is 2^251 + 17*2^192 + 1, the StarkNet field prime.
var Modulus = func() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), 251)
	term := new(big.Int).Lsh(big.NewInt(17), 192)
	m.Add(m, term)
	m.Add(m, big.NewInt(1))
	return m
}()

// Element is a normalized member of the StarkNet prime field.
type Element struct {
	v big.Int
}

// Zero is the additive identity.
var Zero = Element{}

// One is the multiplicative identity.
var One = FromInt64(1)

// FromBigInt reduces v modulo Modulus and returns the resulting Element.
func FromBigInt(v *big.Int) Element {
	var e Element
	e.v.Mod(v, Modulus)
	if e.v.Sign() < 0 {
		e.v.Add(&e.v, Modulus)
	}
	return e
}

// FromInt64 builds an Element from a signed 64-bit integer.
func FromInt64(v int64) Element {
	return FromBigInt(big.NewInt(v))
}

// FromUint64 builds an Element from an unsigned 64-bit integer.
func FromUint64(v uint64) Element {
	return FromBigInt(new(big.Int).SetUint64(v))
}

// FromBytesBE interprets b as a big-endian unsigned integer and reduces it.
func FromBytesBE(b []byte) Element {
	return FromBigInt(new(big.Int).SetBytes(b))
}

// Random returns a uniformly random field element.
func Random() (Element, error) {
	v, err := rand.Int(rand.Reader, Modulus)
	if err != nil {
		return Element{}, fmt.Errorf("felt: random: %w", err)
	}
	return FromBigInt(v), nil
}

// Big returns a copy of the element's value as a big.Int.
func (e Element) Big() *big.Int {
	return new(big.Int).Set(&e.v)
}

// Add returns e + other.
func (e Element) Add(other Element) Element {
	r := new(big.Int).Add(&e.v, &other.v)
	return FromBigInt(r)
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	r := new(big.Int).Sub(&e.v, &other.v)
	return FromBigInt(r)
}

// Neg returns -e.
func (e Element) Neg() Element {
	r := new(big.Int).Neg(&e.v)
	return FromBigInt(r)
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	r := new(big.Int).Mul(&e.v, &other.v)
	return FromBigInt(r)
}

// Inv returns the multiplicative inverse of e via the extended Euclidean
// algorithm. It errors on zero.
func (e Element) Inv() (Element, error) {
	if e.IsZero() {
		return Element{}, fmt.Errorf("felt: inverse of zero")
	}
	g := new(big.Int)
	x := new(big.Int)
	y := new(big.Int)
	g.GCD(x, y, &e.v, Modulus)
	if g.Cmp(big.NewInt(1)) != 0 {
		return Element{}, fmt.Errorf("felt: inverse does not exist")
	}
	return FromBigInt(x), nil
}

// Div returns e / other, erroring when other is zero.
func (e Element) Div(other Element) (Element, error) {
	inv, err := other.Inv()
	if err != nil {
		return Element{}, fmt.Errorf("felt: division: %w", err)
	}
	return e.Mul(inv), nil
}

// Exp returns e raised to the given non-negative exponent.
func (e Element) Exp(exponent *big.Int) Element {
	r := new(big.Int).Exp(&e.v, exponent, Modulus)
	return FromBigInt(r)
}

// Square returns e * e.
func (e Element) Square() Element {
	return e.Mul(e)
}

// Equal reports whether e and other hold the same value.
func (e Element) Equal(other Element) bool {
	return e.v.Cmp(&other.v) == 0
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.v.Sign() == 0
}

// IsOne reports whether e is the multiplicative identity.
func (e Element) IsOne() bool {
	return e.v.Cmp(big.NewInt(1)) == 0
}

// Cmp compares e and other as unsigned integers in [0, Modulus).
func (e Element) Cmp(other Element) int {
	return e.v.Cmp(&other.v)
}

// String renders the decimal representation of e.
func (e Element) String() string {
	return e.v.String()
}

// Bytes32 returns the big-endian 32-byte encoding of e.
func (e Element) Bytes32() [32]byte {
	var out [32]byte
	b := e.v.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// FitsInBits reports whether e's unsigned value needs at most n bits,
// i.e. e < 2^n.
func (e Element) FitsInBits(n uint) bool {
	return e.v.BitLen() <= int(n)
}

// Sqrt returns a square root of e modulo the field prime, if one exists.
func (e Element) Sqrt() (Element, bool) {
	var r big.Int
	if r.ModSqrt(&e.v, Modulus) == nil {
		return Element{}, false
	}
	return Element{v: r}, true
}
