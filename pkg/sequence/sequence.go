// Package sequence encodes sequential identifiers as a fixed-width base-25
// counter over the letters A-Z without I. An identifier such as "EPRNAAAA"
// carries an arbitrary prefix ("EPRN") followed by a four letter counter
// ("AAAA"); successive identifiers increment the counter.
package sequence

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet is the ordered digit set. I is excluded so it cannot be read as 1.
const Alphabet = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

const (
	// Base is the radix of the counter.
	Base = len(Alphabet)
	// Width is the number of counter characters at the end of an identifier.
	Width = 4
	// Capacity is the number of distinct counter values (25^4).
	Capacity = Base * Base * Base * Base
)

var (
	ErrInvalidStart  = errors.New("invalid start name")
	ErrInvalidCount  = errors.New("count must be positive")
	ErrInvalidSuffix = errors.New("invalid counter suffix")
	ErrOverflow      = errors.New("sequence overflow")
)

// OverflowError reports a sequence that ran past the last encodable value.
// Generated is the number of identifiers produced before the overflow.
type OverflowError struct {
	Start     string
	Generated int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("sequence overflow after %d names for start %s", e.Generated, e.Start)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// Identity is one generated identifier within a batch.
type Identity struct {
	Ordinal int    `json:"ordinal"` // 1-based position within its batch
	Full    string `json:"full"`
	Suffix  string `json:"suffix"`
}

var digit = func() map[rune]int {
	m := make(map[rune]int, Base)
	for i, ch := range Alphabet {
		m[ch] = i
	}
	return m
}()

// IsValidStart reports whether name has at least one prefix character
// followed by Width alphabet characters.
func IsValidStart(name string) bool {
	if len(name) < Width+1 {
		return false
	}
	for _, ch := range name[len(name)-Width:] {
		if _, ok := digit[ch]; !ok {
			return false
		}
	}
	return true
}

// Split separates an identifier into its prefix and counter suffix. The
// caller must have checked IsValidStart.
func Split(name string) (prefix, suffix string) {
	return name[:len(name)-Width], name[len(name)-Width:]
}

// Decode returns the counter value of a Width character suffix, most
// significant digit first.
func Decode(suffix string) (int, error) {
	if len(suffix) != Width {
		return 0, fmt.Errorf("%w: %q must be %d characters", ErrInvalidSuffix, suffix, Width)
	}
	v := 0
	for _, ch := range suffix {
		d, ok := digit[ch]
		if !ok {
			return 0, fmt.Errorf("%w: %q contains %q", ErrInvalidSuffix, suffix, ch)
		}
		v = v*Base + d
	}
	return v, nil
}

// Encode is the inverse of Decode. Values outside [0, Capacity) return
// ErrOverflow rather than wrapping.
func Encode(n int) (string, error) {
	if n < 0 || n >= Capacity {
		return "", fmt.Errorf("%w: %d is outside [0, %d)", ErrOverflow, n, Capacity)
	}
	var out [Width]byte
	for i := Width - 1; i >= 0; i-- {
		out[i] = Alphabet[n%Base]
		n /= Base
	}
	return string(out[:]), nil
}

// Normalize upper-cases and trims a start identifier.
func Normalize(start string) string {
	return strings.ToUpper(strings.TrimSpace(start))
}

// Remaining returns how many identifiers can be generated from start,
// inclusive, before the counter overflows.
func Remaining(start string) (int, error) {
	start = Normalize(start)
	if !IsValidStart(start) {
		return 0, invalidStart(start)
	}
	_, suffix := Split(start)
	base, err := Decode(suffix)
	if err != nil {
		return 0, err
	}
	return Capacity - base, nil
}

// Generate returns count sequential identities beginning at start. The start
// is case-normalized before validation. When the counter would overflow no
// identities are returned and the error is an *OverflowError; the check runs
// before anything is allocated.
func Generate(start string, count int) ([]Identity, error) {
	start = Normalize(start)
	if !IsValidStart(start) {
		return nil, invalidStart(start)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w for %s", ErrInvalidCount, start)
	}

	prefix, suffix := Split(start)
	base, err := Decode(suffix)
	if err != nil {
		return nil, err
	}

	if remaining := Capacity - base; count > remaining {
		return nil, &OverflowError{Start: start, Generated: remaining}
	}

	list := make([]Identity, 0, count)
	for i := 0; i < count; i++ {
		enc, err := Encode(base + i)
		if err != nil {
			return nil, err
		}
		list = append(list, Identity{Ordinal: i + 1, Full: prefix + enc, Suffix: enc})
	}
	return list, nil
}

func invalidStart(start string) error {
	return fmt.Errorf("%w: %s. Must end with 4 letters A-Z excluding 'I'", ErrInvalidStart, start)
}
