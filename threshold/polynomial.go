package threshold

// Polynomial is a Shamir secret-sharing polynomial: coefficients[0]
// is the master secret, and evaluating at x = i+1 yields share i.

type polynomial struct {
	coefficients []Scalar
}

func newPolynomial(coefficients []Scalar) *polynomial {
	return &polynomial{coefficients: coefficients}
}

func (p *polynomial) degree() int {
	if len(p.coefficients) == 0 {
		return 0
	}
	return len(p.coefficients) - 1
}

// evaluate computes the polynomial's value at x via Horner's method.
func (p *polynomial) evaluate(x Scalar) Scalar {
	if len(p.coefficients) == 0 {
		return scalarZero()
	}
	result := p.coefficients[len(p.coefficients)-1]
	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result = result.mul(x).add(p.coefficients[i])
	}
	return result
}

// commitment computes the Feldman commitment to this polynomial: each
// coefficient lifted into G1 by scalar-multiplying the generator.
func (p *polynomial) commitment() *commitment {
	coefficients := make([]*g1Point, len(p.coefficients))
	gen := g1Generator()
	for i, c := range p.coefficients {
		coefficients[i] = g1ScalarMul(gen, c.bigInt())
	}
	return &commitment{coefficients: coefficients}
}

// commitment is the public, verifiable commitment to a secret
// polynomial: evaluating it in G1 at x = 0 yields the master public
// key, and at x = i+1 yields public key share i.
type commitment struct {
	coefficients []*g1Point
}

func (c *commitment) degree() int {
	if len(c.coefficients) == 0 {
		return 0
	}
	return len(c.coefficients) - 1
}

func (c *commitment) coefficient(index int) *g1Point {
	return c.coefficients[index]
}

func (c *commitment) evaluate(x Scalar) *g1Point {
	if len(c.coefficients) == 0 {
		return g1Infinity()
	}
	result := c.coefficients[len(c.coefficients)-1]
	for i := len(c.coefficients) - 2; i >= 0; i-- {
		result = g1Add(g1ScalarMul(result, x.bigInt()), c.coefficients[i])
	}
	return result
}
