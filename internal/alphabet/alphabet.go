// Package alphabet maps phone number symbols to compact indices and defines
// the order in which numbers are sorted.
package alphabet

import "fmt"

// Radix is the number of distinct symbols a phone number may contain:
// the ten digits followed by '*' and '#'.
const Radix = 12

// symbols lists every symbol in rank order.
const symbols = "0123456789*#"

// ranks maps each byte to its index in symbols, or -1 if the byte is not
// part of the alphabet.
var ranks = func() [256]int8 {
	var r [256]int8
	for i := range r {
		r[i] = -1
	}
	for i := 0; i < Radix; i++ {
		r[symbols[i]] = int8(i)
	}
	return r
}()

// Index returns the rank of c and whether c belongs to the alphabet.
func Index(c byte) (int, bool) {
	r := ranks[c]
	return int(r), r >= 0
}

// Symbol returns the symbol with the given rank. It panics if idx is not in
// [0, Radix).
func Symbol(idx int) byte {
	return symbols[idx]
}

// Valid reports whether s is a non-empty string made only of alphabet symbols.
func Valid(s string) bool {
	return Validate(s) == nil
}

// Validate returns a descriptive error if s is not a well-formed number.
func Validate(s string) error {
	if s == "" {
		return fmt.Errorf("empty number")
	}
	for i := 0; i < len(s); i++ {
		if ranks[s[i]] < 0 {
			return fmt.Errorf("invalid symbol %q at position %d", s[i], i)
		}
	}
	return nil
}

// Compare orders a and b symbol by symbol using the alphabet ranks
// (0 < 1 < ... < 9 < * < #). A string sorts before any of its extensions.
// Bytes outside the alphabet rank below every symbol.
func Compare(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ra, rb := ranks[a[i]], ranks[b[i]]
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}
