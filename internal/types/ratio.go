package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RatioKind tells whether a Ratio holds a finite value.
type RatioKind int

const (
	// RatioFinite holds a finite value, including zero.
	RatioFinite RatioKind = iota
	// RatioUnbounded means the denominator was zero while the numerator was
	// positive, e.g. a profit factor with no losing trades.
	RatioUnbounded
)

// unboundedText is how an unbounded ratio is written to YAML and JSON.
const unboundedText = "unbounded"

// Ratio is a quotient that is either Finite(value) or Unbounded.
// It never carries a floating-point infinity, so it cannot leak into
// further arithmetic by accident. The zero value is Finite(0).
type Ratio struct {
	kind  RatioKind
	value decimal.Decimal
}

// FiniteRatio returns a finite ratio.
func FiniteRatio(value decimal.Decimal) Ratio {
	return Ratio{kind: RatioFinite, value: value}
}

// UnboundedRatio returns the unbounded ratio.
func UnboundedRatio() Ratio {
	return Ratio{kind: RatioUnbounded, value: decimal.Zero}
}

// Kind returns the variant of the ratio.
func (r Ratio) Kind() RatioKind {
	return r.kind
}

// IsUnbounded reports whether the ratio is unbounded.
func (r Ratio) IsUnbounded() bool {
	return r.kind == RatioUnbounded
}

// Value returns the finite value. ok is false for an unbounded ratio.
func (r Ratio) Value() (value decimal.Decimal, ok bool) {
	if r.kind == RatioUnbounded {
		return decimal.Zero, false
	}

	return r.value, true
}

// AtLeast reports whether the ratio is greater than or equal to minimum.
// An unbounded ratio satisfies every finite minimum.
func (r Ratio) AtLeast(minimum decimal.Decimal) bool {
	if r.kind == RatioUnbounded {
		return true
	}

	return r.value.GreaterThanOrEqual(minimum)
}

// Equal reports whether both ratios are the same variant with the same value.
func (r Ratio) Equal(other Ratio) bool {
	if r.kind != other.kind {
		return false
	}

	return r.kind == RatioUnbounded || r.value.Equal(other.value)
}

func (r Ratio) String() string {
	if r.kind == RatioUnbounded {
		return unboundedText
	}

	return r.value.String()
}

// MarshalYAML writes finite ratios as numbers and unbounded ones as "unbounded".
func (r Ratio) MarshalYAML() (interface{}, error) {
	if r.kind == RatioUnbounded {
		return unboundedText, nil
	}

	return r.value.InexactFloat64(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Ratio) UnmarshalYAML(node *yaml.Node) error {
	return r.parse(node.Value)
}

// MarshalJSON writes finite ratios as numbers and unbounded ones as "unbounded".
func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.kind == RatioUnbounded {
		return json.Marshal(unboundedText)
	}

	return []byte(r.value.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return r.parse(text)
	}

	return r.parse(string(data))
}

func (r *Ratio) parse(text string) error {
	if text == unboundedText {
		*r = UnboundedRatio()

		return nil
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		return fmt.Errorf("invalid ratio %q: %w", text, err)
	}

	*r = FiniteRatio(value)

	return nil
}
