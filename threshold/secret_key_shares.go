package threshold

import "io"

// SecretKeyShares is the dealer-side view of a (t+1)-of-n Shamir
// sharing: the full secret polynomial, from which any validator's
// share and the public commitment can be derived.
type SecretKeyShares struct {
	poly *polynomial
}

func newSecretKeyShares(poly *polynomial) SecretKeyShares {
	return SecretKeyShares{poly: poly}
}

// Threshold returns t, the number of corrupt shares the scheme
// tolerates: any t+1 shares suffice to reconstruct the secret, but no
// fewer reveal anything about it.
func (s SecretKeyShares) Threshold() int {
	return s.poly.degree()
}

// SecretKeyShare returns the i-th secret key share, evaluating the
// polynomial at x = i+1.
func (s SecretKeyShares) SecretKeyShare(i uint64) SecretKeyShare {
	x := scalarFromShareIndex(i)
	return newSecretKeyShare(NewSecretKey(s.poly.evaluate(x)))
}

// PublicKeys returns the public commitment to this sharing, from
// which the master public key and any public key share can be
// derived without learning the secret.
func (s SecretKeyShares) PublicKeys() PublicKeyShares {
	return newPublicKeyShares(s.poly.commitment())
}

// SecretKey returns the master secret key, the polynomial's value at
// x = 0.
func (s SecretKeyShares) SecretKey() SecretKey {
	return NewSecretKey(s.poly.evaluate(scalarZero()))
}

// RandomSecretKeyShares draws a fresh polynomial of degree threshold
// (threshold+1 uniformly random coefficients), the standard way to deal a new
// threshold key.
func RandomSecretKeyShares(threshold int, rnd io.Reader) (SecretKeyShares, error) {
	coefficients := make([]Scalar, threshold+1)
	for i := range coefficients {
		c, err := RandomScalar(rnd)
		if err != nil {
			return SecretKeyShares{}, err
		}
		coefficients[i] = c
	}
	return newSecretKeyShares(newPolynomial(coefficients)), nil
}
