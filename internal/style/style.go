// Package style implements colour, opacity, line-width and text-position
// parsing and normalisation for visual and connection styling (spec.md §9
// Design Note: "isolate behind a small Style module with parse/normalise
// functions").
package style

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeColor accepts "#RRGGBB" or "RRGGBB" (case-insensitive) and
// returns the canonical upper-case "#RRGGBB" form. A nil input clears to
// default and is represented by the caller passing nil, not by this
// function — NormalizeColor only ever receives a non-nil string to parse.
//
// The source spec.md §9 leaves open whether a colour string of unexpected
// length should be a validation error; this implementation treats it as one
// (see SPEC_FULL.md §9) for consistency with every other malformed-field
// case in the validator.
func NormalizeColor(raw string) (string, error) {
	s := strings.TrimPrefix(raw, "#")
	if len(s) != 6 {
		return "", fmt.Errorf("invalid color %q: expected 6 hex digits", raw)
	}
	upper := strings.ToUpper(s)
	for _, r := range upper {
		if !isHexDigit(r) {
			return "", fmt.Errorf("invalid color %q: non-hex digit %q", raw, r)
		}
	}
	return "#" + upper, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')
}

// NormalizeOpacity validates that v is within the accepted 0..=255 range
// (spec.md §9: "Numeric ranges: opacity 0..=255").
func NormalizeOpacity(v int) (int, error) {
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("invalid opacity %d: must be 0..255", v)
	}
	return v, nil
}

// NormalizeLineWidth validates that v is within the accepted 1..=4 range
// (spec.md §9: "line width 1..=4").
func NormalizeLineWidth(v int) (int, error) {
	if v < 1 || v > 4 {
		return 0, fmt.Errorf("invalid line width %d: must be 1..4", v)
	}
	return v, nil
}

// NormalizeTextPosition validates that v is one of the three accepted
// positions (spec.md §9: "text position ∈ {0,1,2}").
func NormalizeTextPosition(v int) (int, error) {
	if v < 0 || v > 2 {
		return 0, fmt.Errorf("invalid text position %d: must be 0, 1, or 2", v)
	}
	return v, nil
}

// ParseIntField converts a JSON number (decoded as float64 or already an
// int) into an int, used by op validators that accept opacity/lineWidth/
// textPosition as raw JSON values.
func ParseIntField(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
