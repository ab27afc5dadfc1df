package threshold

// PublicKeyShares is the public commitment to a Shamir-shared secret
// key: the master public key is its value at x = 0, and public key
// share i is its value at x = i+1.
type PublicKeyShares struct {
	commit *commitment
}

func newPublicKeyShares(commit *commitment) PublicKeyShares {
	return PublicKeyShares{commit: commit}
}

// Threshold returns t, the polynomial's degree; t+1 shares are the
// minimum needed to combine a signature or decrypt a ciphertext.
func (p PublicKeyShares) Threshold() int {
	return p.commit.degree()
}

// PublicKey returns the master public key.
func (p PublicKeyShares) PublicKey() PublicKey {
	return newPublicKey(p.commit.coefficient(0))
}

// PublicKeyShare returns the i-th public key share.
func (p PublicKeyShares) PublicKeyShare(i uint64) PublicKeyShare {
	x := scalarFromShareIndex(i)
	return newPublicKeyShare(newPublicKey(p.commit.evaluate(x)))
}

// indexedG1/indexedG2 pair a share's zero-based index with its point,
// the input Lagrange interpolation consumes.
type indexedG1 struct {
	index uint64
	point *g1Point
}

type indexedG2 struct {
	index uint64
	point *g2Point
}

// CombineSignatures interpolates a threshold of signature shares into
// a full Signature verifiable under the master public key.
func (p PublicKeyShares) CombineSignatures(shares map[uint64]SignatureShare) (Signature, error) {
	samples := make([]indexedG2, 0, len(shares))
	for i, s := range shares {
		samples = append(samples, indexedG2{index: i, point: s.point})
	}
	point, err := interpolateG2(p.commit.degree(), samples)
	if err != nil {
		return Signature{}, err
	}
	return newSignature(point), nil
}

// Decrypt interpolates a threshold of decryption shares and unmasks
// ct's plaintext with the result.
func (p PublicKeyShares) Decrypt(shares map[uint64]DecryptionShare, ct *Ciphertext) ([]byte, error) {
	samples := make([]indexedG1, 0, len(shares))
	for i, s := range shares {
		samples = append(samples, indexedG1{index: i, point: s.point})
	}
	g, err := interpolateG1(p.commit.degree(), samples)
	if err != nil {
		return nil, err
	}
	return xorWithHash(g, ct.msg), nil
}

// interpolateG1 performs Lagrange interpolation at x = 0 over t+1 of
// the given (index, point) samples in G1.
func interpolateG1(t int, samples []indexedG1) (*g1Point, error) {
	coefficients, err := lagrangeCoefficientsAtZero(t, len(samples), func(i int) uint64 { return samples[i].index })
	if err != nil {
		return nil, err
	}
	result := g1Infinity()
	for i, l0 := range coefficients {
		result = g1Add(result, g1ScalarMul(samples[i].point, l0.bigInt()))
	}
	return result, nil
}

// interpolateG2 is interpolateG1's G2 counterpart.
func interpolateG2(t int, samples []indexedG2) (*g2Point, error) {
	coefficients, err := lagrangeCoefficientsAtZero(t, len(samples), func(i int) uint64 { return samples[i].index })
	if err != nil {
		return nil, err
	}
	result := g2Infinity()
	for i, l0 := range coefficients {
		result = g2Add(result, g2ScalarMul(samples[i].point, l0.bigInt()))
	}
	return result, nil
}

// lagrangeCoefficientsAtZero computes the Lagrange basis coefficients
// l_i(0) = prod_{j != i} (-x_j) / (x_i - x_j) for the first t+1
// samples (by their original order), where x_i = index_i + 1 since
// x = 0 is reserved for the master key.
func lagrangeCoefficientsAtZero(t, n int, indexOf func(int) uint64) ([]Scalar, error) {
	if n <= t {
		return nil, ErrNotEnoughShares
	}
	count := t + 1
	xs := make([]Scalar, count)
	for i := 0; i < count; i++ {
		xs[i] = scalarFromShareIndex(indexOf(i))
	}

	coefficients := make([]Scalar, count)
	for i := 0; i < count; i++ {
		num := scalarOne()
		denom := scalarOne()
		for j := 0; j < count; j++ {
			if i == j {
				continue
			}
			num = num.mul(scalarZero().sub(xs[j]))
			diff := xs[i].sub(xs[j])
			if diff.v.Sign() == 0 {
				return nil, ErrDuplicateEntry
			}
			denom = denom.mul(diff)
		}
		inv, ok := denom.invert()
		if !ok {
			return nil, ErrDuplicateEntry
		}
		coefficients[i] = num.mul(inv)
	}
	return coefficients, nil
}
