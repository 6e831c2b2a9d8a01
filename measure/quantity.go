// Package measure provides a small physical-quantity payload type for use
// with tally nodes. A Quantity pairs a magnitude with a unit expression
// ("m^1", "m^2 s^-1", ...) and supplies the arithmetic, ordering and
// measurement capabilities the node core consumes.
package measure

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Quantity is a magnitude with a unit expression. The zero value is a
// dimensionless zero.
type Quantity struct {
	mag  float64
	unit string // canonical form, e.g. "m^1" or "m^2 s^-1"; "" when dimensionless
}

// New creates a Quantity. The unit may be a single base symbol ("m") or a
// space-separated product of base^exponent factors ("m^2 s^-1"); it is
// normalized to canonical form. An empty unit is dimensionless.
func New(magnitude float64, unit string) Quantity {
	return Quantity{mag: magnitude, unit: parseUnits(unit).canonical()}
}

// Dimensionless creates a unit-free Quantity.
func Dimensionless(magnitude float64) Quantity {
	return Quantity{mag: magnitude}
}

// Magnitude returns the numeric magnitude.
func (q Quantity) Magnitude() float64 {
	return q.mag
}

// Unit returns the canonical unit expression, empty when dimensionless.
func (q Quantity) Unit() string {
	return q.unit
}

// ToMagnitude implements the measurement capability consumed by tally.
func (q Quantity) ToMagnitude() float64 {
	return q.mag
}

// UnitSymbol implements the measurement capability consumed by tally.
func (q Quantity) UnitSymbol() string {
	if q.unit == "" {
		return "dimensionless"
	}
	return q.unit
}

// String renders the quantity as "<magnitude> <unit>", or just the magnitude
// when dimensionless.
func (q Quantity) String() string {
	mag := strconv.FormatFloat(q.mag, 'g', -1, 64)
	if q.unit == "" {
		return mag
	}
	return mag + " " + q.unit
}

// Add sums two quantities of the same unit. Adding quantities with different
// units is a modeling error and panics.
func (q Quantity) Add(other Quantity) Quantity {
	q.requireSameUnit("add", other)
	q.mag += other.mag
	return q
}

// Sub subtracts a quantity of the same unit. Subtracting quantities with
// different units is a modeling error and panics.
func (q Quantity) Sub(other Quantity) Quantity {
	q.requireSameUnit("sub", other)
	q.mag -= other.mag
	return q
}

// Mul multiplies two quantities, combining their unit exponents
// ("m^1" * "m^1" = "m^2").
func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity{
		mag:  q.mag * other.mag,
		unit: parseUnits(q.unit).combine(parseUnits(other.unit), 1).canonical(),
	}
}

// Div divides by another quantity, subtracting its unit exponents. Units
// cancel to dimensionless.
func (q Quantity) Div(other Quantity) Quantity {
	return Quantity{
		mag:  q.mag / other.mag,
		unit: parseUnits(q.unit).combine(parseUnits(other.unit), -1).canonical(),
	}
}

// Scale multiplies the magnitude by a bare number, keeping the unit.
func (q Quantity) Scale(k float64) Quantity {
	q.mag *= k
	return q
}

// Compare orders two quantities. Quantities with different units, or with a
// NaN magnitude, are unordered.
func (q Quantity) Compare(other Quantity) (int, bool) {
	if q.unit != other.unit || q.mag != q.mag || other.mag != other.mag {
		return 0, false
	}
	switch {
	case q.mag < other.mag:
		return -1, true
	case q.mag > other.mag:
		return 1, true
	}
	return 0, true
}

func (q Quantity) requireSameUnit(op string, other Quantity) {
	if q.unit != other.unit {
		panic(fmt.Sprintf("measure: %s of incompatible units %q and %q",
			op, q.UnitSymbol(), other.UnitSymbol()))
	}
}

// units maps base symbols to exponents.
type units map[string]int

func parseUnits(expr string) units {
	u := units{}
	for _, tok := range strings.Fields(expr) {
		base, expText, found := strings.Cut(tok, "^")
		exp := 1
		if found {
			if parsed, err := strconv.Atoi(expText); err == nil {
				exp = parsed
			}
		}
		u[base] += exp
		if u[base] == 0 {
			delete(u, base)
		}
	}
	return u
}

// combine adds (sign=1) or subtracts (sign=-1) the other factor's exponents.
func (u units) combine(other units, sign int) units {
	for base, exp := range other {
		u[base] += sign * exp
		if u[base] == 0 {
			delete(u, base)
		}
	}
	return u
}

// canonical renders the factors sorted by base symbol, each as base^exp.
func (u units) canonical() string {
	if len(u) == 0 {
		return ""
	}
	bases := make([]string, 0, len(u))
	for base := range u {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	parts := make([]string, 0, len(bases))
	for _, base := range bases {
		parts = append(parts, fmt.Sprintf("%s^%d", base, u[base]))
	}
	return strings.Join(parts, " ")
}
