package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Color is an opaque colour value (a name, a hex string, or a palette key)
type Color string

// ColorsKind tags the variant held by a TileColors value
type ColorsKind int

const (
	// ColorsAbsent marks a no-op value that mapping functions pass through.
	ColorsAbsent ColorsKind = iota
	// ColorsUniform applies one colour to every slot or triangle.
	ColorsUniform
	// ColorsSequence is an explicit ordered sequence of colours.
	ColorsSequence
)

// String returns the variant name
func (k ColorsKind) String() string {
	switch k {
	case ColorsAbsent:
		return "absent"
	case ColorsUniform:
		return "uniform"
	case ColorsSequence:
		return "sequence"
	}
	return fmt.Sprintf("ColorsKind(%d)", int(k))
}

// TileColors is a tagged union of Uniform(Color), Sequence([]Color) and Absent.
// The zero value is Absent.
type TileColors struct {
	kind    ColorsKind
	uniform Color
	seq     []Color
}

// Absent returns the no-op value
func Absent() TileColors {
	return TileColors{}
}

// Uniform returns a value applying c everywhere
func Uniform(c Color) TileColors {
	return TileColors{kind: ColorsUniform, uniform: c}
}

// Sequence returns an explicit ordered sequence. The colours are copied.
func Sequence(colors ...Color) TileColors {
	seq := make([]Color, len(colors))
	copy(seq, colors)
	return TileColors{kind: ColorsSequence, seq: seq}
}

// Kind returns which variant tc holds
func (tc TileColors) Kind() ColorsKind { return tc.kind }

// IsAbsent reports whether tc is the no-op value
func (tc TileColors) IsAbsent() bool { return tc.kind == ColorsAbsent }

// Uniform returns the uniform colour and whether tc is Uniform
func (tc TileColors) Uniform() (Color, bool) {
	return tc.uniform, tc.kind == ColorsUniform
}

// Colors returns a copy of the sequence, or nil when tc is not a Sequence
func (tc TileColors) Colors() []Color {
	if tc.kind != ColorsSequence {
		return nil
	}
	out := make([]Color, len(tc.seq))
	copy(out, tc.seq)
	return out
}

// Len returns the sequence length, or 0 for the other variants
func (tc TileColors) Len() int {
	if tc.kind != ColorsSequence {
		return 0
	}
	return len(tc.seq)
}

// At returns the i-th colour of a sequence; out-of-range reads yield ""
func (tc TileColors) At(i int) Color {
	if tc.kind != ColorsSequence || i < 0 || i >= len(tc.seq) {
		return ""
	}
	return tc.seq[i]
}

// Equal reports whether both values hold the same variant and colours
func (tc TileColors) Equal(other TileColors) bool {
	if tc.kind != other.kind {
		return false
	}
	switch tc.kind {
	case ColorsUniform:
		return tc.uniform == other.uniform
	case ColorsSequence:
		if len(tc.seq) != len(other.seq) {
			return false
		}
		for i := range tc.seq {
			if tc.seq[i] != other.seq[i] {
				return false
			}
		}
	}
	return true
}

// String formats tc for logs and test failures
func (tc TileColors) String() string {
	switch tc.kind {
	case ColorsUniform:
		return fmt.Sprintf("Uniform(%s)", tc.uniform)
	case ColorsSequence:
		return fmt.Sprintf("Sequence(%v)", tc.seq)
	}
	return "Absent"
}

// MarshalJSON encodes Absent as null, Uniform as a string and Sequence as an array
func (tc TileColors) MarshalJSON() ([]byte, error) {
	switch tc.kind {
	case ColorsUniform:
		return json.Marshal(tc.uniform)
	case ColorsSequence:
		if tc.seq == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(tc.seq)
	}
	return []byte("null"), nil
}

// UnmarshalJSON is the inverse of MarshalJSON
func (tc *TileColors) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*tc = Absent()
		return nil
	}

	switch trimmed[0] {
	case '"':
		var c Color
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return err
		}
		*tc = Uniform(c)
		return nil
	case '[':
		var seq []Color
		if err := json.Unmarshal(trimmed, &seq); err != nil {
			return fmt.Errorf("colors sequence must contain only strings: %w", err)
		}
		*tc = Sequence(seq...)
		return nil
	}

	return fmt.Errorf("colors must be null, a string, or an array of strings")
}
