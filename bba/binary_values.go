// Package bba implements binary Byzantine agreement: the
// Mostéfaoui–Moumen–Raynal BVal/Aux/Conf protocol driven to a decision
// by a BLS threshold-signature common coin, round after round until
// the coin agrees with the round's Conf output.
package bba

// BinaryValues is the three-point lattice {False, True, Both} that
// bin_values, the Aux-phase output, and the Conf-phase output all
// live in: Both is the join reached once a round has seen evidence
// for both bits.
type BinaryValues uint8

const (
	BinaryFalse BinaryValues = iota
	BinaryTrue
	BinaryBoth
)

// BinaryValuesFromBool lifts a single bit into the lattice.
func BinaryValuesFromBool(b bool) BinaryValues {
	if b {
		return BinaryTrue
	}
	return BinaryFalse
}

// Includes reports whether v, taken as a set of bits, contains other.
func (v BinaryValues) Includes(other BinaryValues) bool {
	if v == BinaryBoth {
		return true
	}
	return v == other
}

// Single returns the lone bit v carries, or ok=false if v is Both.
func (v BinaryValues) Single() (value bool, ok bool) {
	switch v {
	case BinaryFalse:
		return false, true
	case BinaryTrue:
		return true, true
	default:
		return false, false
	}
}

// Add joins v with other: the result is Both unless both sides already
// agree on the same single bit.
func (v BinaryValues) Add(other BinaryValues) BinaryValues {
	if v == other {
		return v
	}
	return BinaryBoth
}

func (v BinaryValues) String() string {
	switch v {
	case BinaryFalse:
		return "false"
	case BinaryTrue:
		return "true"
	default:
		return "both"
	}
}

// BinaryValueSet is an optional BinaryValues accumulator: unset until
// the first Insert, and growing monotonically toward Both afterward.
type BinaryValueSet struct {
	value BinaryValues
	set   bool
}

// NewBinaryValueSet builds an already-set accumulator, for building a
// decided Aux/Conf output directly.
func NewBinaryValueSet(values BinaryValues) BinaryValueSet {
	return BinaryValueSet{value: values, set: true}
}

// Insert folds value in and reports whether doing so changed the set.
func (s *BinaryValueSet) Insert(value bool) bool {
	bv := BinaryValuesFromBool(value)
	if !s.set {
		s.value, s.set = bv, true
		return true
	}
	joined := s.value.Add(bv)
	changed := joined != s.value
	s.value = joined
	return changed
}

// Includes reports whether the set (if any) includes values.
func (s BinaryValueSet) Includes(values BinaryValues) bool {
	return s.set && s.value.Includes(values)
}

// IsSet reports whether anything has been inserted yet.
func (s BinaryValueSet) IsSet() bool { return s.set }

// Values returns the accumulated lattice value. Callers must only call
// this once IsSet reports true.
func (s BinaryValueSet) Values() BinaryValues { return s.value }
