package threshold

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Scalar is an element of the scalar field Z_r, r being G1/G2's group
// order. Secret key shares, Lagrange coefficients and polynomial
// coefficients are all scalars.
type Scalar struct {
	v *big.Int
}

func scalarFromBigInt(v *big.Int) Scalar {
	return Scalar{v: new(big.Int).Mod(v, groupOrder)}
}

// ScalarFromUint64 builds a scalar from a small non-negative integer,
// used to turn a zero-based share index i into the evaluation point
// x = i+1 a share's polynomial is sampled at.
func ScalarFromUint64(v uint64) Scalar {
	return scalarFromBigInt(new(big.Int).SetUint64(v))
}

func scalarZero() Scalar { return Scalar{v: new(big.Int)} }
func scalarOne() Scalar  { return Scalar{v: big.NewInt(1)} }

// RandomScalar draws a uniformly random scalar using rnd, defaulting
// to crypto/rand.Reader when rnd is nil.
func RandomScalar(rnd io.Reader) (Scalar, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	v, err := rand.Int(rnd, groupOrder)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{v: v}, nil
}

func (s Scalar) add(o Scalar) Scalar { return scalarFromBigInt(new(big.Int).Add(s.v, o.v)) }
func (s Scalar) sub(o Scalar) Scalar { return scalarFromBigInt(new(big.Int).Sub(s.v, o.v)) }
func (s Scalar) mul(o Scalar) Scalar { return scalarFromBigInt(new(big.Int).Mul(s.v, o.v)) }

func (s Scalar) invert() (Scalar, bool) {
	if s.v.Sign() == 0 {
		return Scalar{}, false
	}
	return Scalar{v: new(big.Int).ModInverse(s.v, groupOrder)}, true
}

func (s Scalar) equal(o Scalar) bool { return s.v.Cmp(o.v) == 0 }

func (s Scalar) bigInt() *big.Int { return s.v }
