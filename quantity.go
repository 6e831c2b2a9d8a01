package tally

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimensionless is the unit symbol reported for payloads whose rendering is
// a bare number.
const Dimensionless = "dimensionless"

// Measurable lets a payload expose its magnitude and unit symbol directly,
// bypassing text scraping entirely. Payload types that implement it never
// hit the introspection failure mode.
type Measurable interface {
	ToMagnitude() float64
	UnitSymbol() string
}

// Measurement is the introspected magnitude and unit symbol of a payload.
type Measurement struct {
	Magnitude float64
	Symbol    string
}

// RenderError reports a payload whose textual rendering could not be
// decomposed into a magnitude and unit symbol. Rendered holds the offending
// text so callers can diagnose unexpected formats.
type RenderError struct {
	Rendered string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot measure payload rendered as %q", e.Rendered)
}

// Measure extracts a numeric magnitude and unit symbol from an arbitrary
// payload. Payloads implementing Measurable are read directly. Otherwise the
// payload's textual rendering is scraped: a bare number is dimensionless, and
// anything else must split on the first space into a numeric token and a
// trailing symbol. A rendering that fits neither form fails with a
// RenderError carrying the text.
func Measure(v any) (Measurement, error) {
	if m, ok := v.(Measurable); ok {
		return Measurement{Magnitude: m.ToMagnitude(), Symbol: m.UnitSymbol()}, nil
	}

	text := fmt.Sprintf("%v", v)
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Measurement{Magnitude: f, Symbol: Dimensionless}, nil
	}

	numeric, symbol, found := strings.Cut(text, " ")
	if !found || symbol == "" {
		return Measurement{}, &RenderError{Rendered: text}
	}
	f, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return Measurement{}, &RenderError{Rendered: text}
	}
	return Measurement{Magnitude: f, Symbol: symbol}, nil
}

// Magnitude returns just the introspected magnitude of a payload.
func Magnitude(v any) (float64, error) {
	m, err := Measure(v)
	if err != nil {
		return 0, err
	}
	return m.Magnitude, nil
}

// Symbol returns just the introspected unit symbol of a payload.
func Symbol(v any) (string, error) {
	m, err := Measure(v)
	if err != nil {
		return "", err
	}
	return m.Symbol, nil
}
