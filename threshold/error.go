package threshold

import "errors"

// ErrNotEnoughShares is returned when Lagrange interpolation is handed
// fewer samples than the polynomial's degree requires.
var ErrNotEnoughShares = errors.New("threshold: not enough shares")

// ErrDuplicateEntry is returned when two samples handed to Lagrange
// interpolation share the same x-coordinate, making the Lagrange
// denominator zero.
var ErrDuplicateEntry = errors.New("threshold: duplicate share index")
