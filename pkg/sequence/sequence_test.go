package sequence

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestIsValidStart(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"EPRNAAAA", true},
		{"XAAAA", true},
		{"AAAA", false},
		{"", false},
		{"EPRNAAIA", false},
		{"EPRNaaaa", false},
		{"EPRN1AAA", false},
		{"12345ZZZZ", true},
	}
	for _, tt := range tests {
		if got := IsValidStart(tt.name); got != tt.want {
			t.Errorf("IsValidStart(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDecode_Known(t *testing.T) {
	tests := []struct {
		suffix string
		want   int
	}{
		{"AAAA", 0},
		{"AAAB", 1},
		{"AAAZ", 24},
		{"AABA", 25},
		{"ZZZZ", Capacity - 1},
	}
	for _, tt := range tests {
		got, err := Decode(tt.suffix)
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.suffix, err)
		}
		if got != tt.want {
			t.Errorf("Decode(%q) = %d, want %d", tt.suffix, got, tt.want)
		}
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, s := range []string{"AAA", "AAAAA", "AAIA", "aaaa"} {
		if _, err := Decode(s); !errors.Is(err, ErrInvalidSuffix) {
			t.Errorf("Decode(%q) expected ErrInvalidSuffix, got %v", s, err)
		}
	}
}

func TestEncode_Overflow(t *testing.T) {
	if _, err := Encode(Capacity); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow for 25^4, got %v", err)
	}
	if _, err := Encode(-1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow for -1, got %v", err)
	}
	got, err := Encode(Capacity - 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ZZZZ" {
		t.Errorf("expected ZZZZ, got %s", got)
	}
}

func TestEncodeDecode_RoundTripSuffix(t *testing.T) {
	letter := rapid.SampledFrom([]byte(Alphabet))
	rapid.Check(t, func(t *rapid.T) {
		b := rapid.SliceOfN(letter, Width, Width).Draw(t, "suffix")
		s := string(b)
		n, err := Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		back, err := Encode(n)
		if err != nil {
			t.Fatalf("Encode(%d): %v", n, err)
		}
		if back != s {
			t.Fatalf("Encode(Decode(%q)) = %q", s, back)
		}
	})
}

func TestEncodeDecode_RoundTripValue(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, Capacity-1).Draw(t, "n")
		s, err := Encode(n)
		if err != nil {
			t.Fatalf("Encode(%d): %v", n, err)
		}
		if len(s) != Width {
			t.Fatalf("Encode(%d) = %q, want %d characters", n, s, Width)
		}
		back, err := Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		if back != n {
			t.Fatalf("Decode(Encode(%d)) = %d", n, back)
		}
	})
}

func TestGenerate_Sequential(t *testing.T) {
	ids, err := Generate("EPRNAAAA", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AAAA", "AAAB", "AAAC"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d identities, got %d", len(want), len(ids))
	}
	for i, id := range ids {
		if id.Ordinal != i+1 {
			t.Errorf("identity %d: expected ordinal %d, got %d", i, i+1, id.Ordinal)
		}
		if id.Suffix != want[i] {
			t.Errorf("identity %d: expected suffix %s, got %s", i, want[i], id.Suffix)
		}
		if id.Full != "EPRN"+want[i] {
			t.Errorf("identity %d: expected full EPRN%s, got %s", i, want[i], id.Full)
		}
	}
}

func TestGenerate_CarriesAcrossDigits(t *testing.T) {
	ids, err := Generate("pt-aaaz", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids[0].Full != "PT-AAAZ" || ids[1].Full != "PT-AABA" {
		t.Errorf("unexpected identities: %+v", ids)
	}
}

func TestGenerate_InvalidStart(t *testing.T) {
	_, err := Generate("EPRNAAIA", 1)
	if !errors.Is(err, ErrInvalidStart) {
		t.Fatalf("expected ErrInvalidStart, got %v", err)
	}
	if !strings.Contains(err.Error(), "EPRNAAIA") {
		t.Errorf("expected error to name the start, got %q", err.Error())
	}
}

func TestGenerate_NonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := Generate("EPRNAAAA", n)
		if !errors.Is(err, ErrInvalidCount) {
			t.Fatalf("count %d: expected ErrInvalidCount, got %v", n, err)
		}
		if !strings.Contains(err.Error(), "EPRNAAAA") {
			t.Errorf("count %d: expected error to name the start, got %q", n, err.Error())
		}
	}
}

func TestGenerate_Overflow(t *testing.T) {
	ids, err := Generate("EPRNZZZY", 5)
	if ids != nil {
		t.Errorf("expected no identities on overflow, got %d", len(ids))
	}
	var oe *OverflowError
	if !errors.As(err, &oe) {
		t.Fatalf("expected *OverflowError, got %v", err)
	}
	if oe.Generated != 2 {
		t.Errorf("expected 2 generated before overflow, got %d", oe.Generated)
	}
	if oe.Start != "EPRNZZZY" {
		t.Errorf("expected start EPRNZZZY, got %s", oe.Start)
	}
	if !errors.Is(err, ErrOverflow) {
		t.Error("expected OverflowError to unwrap to ErrOverflow")
	}
}

func TestGenerate_HugeCountOverflows(t *testing.T) {
	for _, start := range []string{"EPRNZZZY", "EPRNAAAA"} {
		ids, err := Generate(start, 1<<60)
		if ids != nil {
			t.Errorf("%s: expected no identities, got %d", start, len(ids))
		}
		var oe *OverflowError
		if !errors.As(err, &oe) {
			t.Fatalf("%s: expected *OverflowError, got %v", start, err)
		}
		want, _ := Remaining(start)
		if oe.Generated != want || oe.Start != start {
			t.Errorf("%s: expected %d generated, got %+v", start, want, oe)
		}
	}
}

func TestGenerate_ExactlyFillsCapacity(t *testing.T) {
	ids, err := Generate("EPRNZZZY", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids[1].Suffix != "ZZZZ" {
		t.Errorf("expected last suffix ZZZZ, got %s", ids[1].Suffix)
	}
}

func TestRemaining(t *testing.T) {
	n, err := Remaining("EPRNZZZY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
	if _, err := Remaining("bad"); !errors.Is(err, ErrInvalidStart) {
		t.Errorf("expected ErrInvalidStart, got %v", err)
	}
}
