package syscall

import (
	"crypto/elliptic"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/sha3"
)

func btcecS256Params() *elliptic.CurveParams {
	return btcec.S256().Params()
}

func limbsToBigInt(limbs [4]uint64) *big.Int {
	out := new(big.Int)
	for i := 3; i >= 0; i-- {
		out.Lsh(out, 64)
		out.Or(out, new(big.Int).SetUint64(limbs[i]))
	}
	return out
}

func bigIntToLimbs(v *big.Int) [4]uint64 {
	var out [4]uint64
	mask := new(big.Int).SetUint64(^uint64(0))
	tmp := new(big.Int).Set(v)
	for i := 0; i < 4; i++ {
		word := new(big.Int).And(tmp, mask)
		out[i] = word.Uint64()
		tmp.Rsh(tmp, 64)
	}
	return out
}

// secp256k1Point is a point held live by a Handler's point table, keyed by
// an opaque int handle the way the syscall ABI expects.
type secp256k1Point struct {
	x, y *big.Int
}

func secp256k1NewPoint(x, y [4]uint64) (secp256k1Point, bool) {
	curve := btcec.S256()
	xi, yi := limbsToBigInt(x), limbsToBigInt(y)
	if !curve.IsOnCurve(xi, yi) {
		return secp256k1Point{}, false
	}
	return secp256k1Point{x: xi, y: yi}, true
}

func secp256k1AddPoints(a, b secp256k1Point) secp256k1Point {
	curve := btcec.S256()
	x, y := curve.Add(a.x, a.y, b.x, b.y)
	return secp256k1Point{x: x, y: y}
}

func secp256k1MulPoint(p secp256k1Point, scalar [4]uint64) secp256k1Point {
	curve := btcec.S256()
	k := limbsToBigInt(scalar)
	x, y := curve.ScalarMult(p.x, p.y, k.Bytes())
	return secp256k1Point{x: x, y: y}
}

func secp256k1PointFromX(x [4]uint64, yParity bool) (secp256k1Point, bool) {
	params := btcec.S256().Params()
	xi := limbsToBigInt(x)
	// y^2 = x^3 + 7 mod p
	rhs := new(big.Int).Exp(xi, big.NewInt(3), params.P)
	rhs.Add(rhs, params.B)
	rhs.Mod(rhs, params.P)
	y := new(big.Int).ModSqrt(rhs, params.P)
	if y == nil {
		return secp256k1Point{}, false
	}
	if (y.Bit(0) == 1) != yParity {
		y.Sub(params.P, y)
	}
	return secp256k1Point{x: xi, y: y}, true
}

// secp256r1Point mirrors secp256k1Point but over the stdlib P256 curve,
// which is literally the secp256r1 curve (not a stand-in for it).
type secp256r1Point struct {
	x, y *big.Int
}

func secp256r1NewPoint(x, y [4]uint64) (secp256r1Point, bool) {
	curve := elliptic.P256()
	xi, yi := limbsToBigInt(x), limbsToBigInt(y)
	if !curve.IsOnCurve(xi, yi) {
		return secp256r1Point{}, false
	}
	return secp256r1Point{x: xi, y: yi}, true
}

func secp256r1AddPoints(a, b secp256r1Point) secp256r1Point {
	curve := elliptic.P256()
	x, y := curve.Add(a.x, a.y, b.x, b.y)
	return secp256r1Point{x: x, y: y}
}

func secp256r1MulPoint(p secp256r1Point, scalar [4]uint64) secp256r1Point {
	curve := elliptic.P256()
	k := limbsToBigInt(scalar)
	x, y := curve.ScalarMult(p.x, p.y, k.Bytes())
	return secp256r1Point{x: x, y: y}
}

func secp256r1PointFromX(x [4]uint64, yParity bool) (secp256r1Point, bool) {
	params := elliptic.P256().Params()
	xi := limbsToBigInt(x)
	rhs := new(big.Int).Exp(xi, big.NewInt(3), params.P)
	threeX := new(big.Int).Mul(xi, big.NewInt(3))
	rhs.Sub(rhs, threeX)
	rhs.Add(rhs, params.B)
	rhs.Mod(rhs, params.P)
	y := new(big.Int).ModSqrt(rhs, params.P)
	if y == nil {
		return secp256r1Point{}, false
	}
	if (y.Bit(0) == 1) != yParity {
		y.Sub(params.P, y)
	}
	return secp256r1Point{x: xi, y: y}, true
}

// keccak256 hashes input with Keccak-256 and returns the full 32-byte
// digest; StubHandler.Keccak reduces it to the [2]uint64 the Handler
// interface exposes.
func keccak256(input []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(input)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// sha256Compress runs one FIPS 180-4 SHA-256 compression step over an
// existing 8-word state and a 16-word message block. No library in the
// retrieval pack exposes a single-block compression primitive (the
// standard library's crypto/sha256 only offers whole-message hashing), so
// this is hand-rolled directly from the FIPS 180-4 pseudocode.
func sha256Compress(state [8]uint32, block [16]uint32) [8]uint32 {
	var w [64]uint32
	copy(w[:16], block[:])
	for i := 16; i < 64; i++ {
		s0 := rotr32(w[i-15], 7) ^ rotr32(w[i-15], 18) ^ (w[i-15] >> 3)
		s1 := rotr32(w[i-2], 17) ^ rotr32(w[i-2], 19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]
	for i := 0; i < 64; i++ {
		s1 := rotr32(e, 6) ^ rotr32(e, 11) ^ rotr32(e, 25)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + sha256K[i] + w[i]
		s0 := rotr32(a, 2) ^ rotr32(a, 13) ^ rotr32(a, 22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		h, g, f, e, d, c, b, a = g, f, e, d+t1, c, b, a, t1+t2
	}

	return [8]uint32{
		state[0] + a, state[1] + b, state[2] + c, state[3] + d,
		state[4] + e, state[5] + f, state[6] + g, state[7] + h,
	}
}

func rotr32(x uint32, n uint) uint32 {
	return (x >> n) | (x << (32 - n))
}

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}
