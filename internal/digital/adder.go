package digital

import "fmt"

// HalfAdd returns the sum and carry of two levels.
func HalfAdd(a, b Level) (sum, carry Level) {
	return Xor(a, b), And(a, b)
}

// FullAdd returns the sum and carry of two levels and a carry in.
func FullAdd(a, b, cin Level) (sum, carry Level) {
	s1, c1 := HalfAdd(a, b)
	s2, c2 := HalfAdd(s1, cin)
	return s2, Or(c1, c2)
}

// Add ripples a carry through two equal-width buses, least significant
// bit first, and returns the sum bus and the carry out.
func Add(a, b []Level, cin Level) ([]Level, Level, error) {
	if len(a) != len(b) {
		return nil, LogicX, fmt.Errorf("digital: addend widths differ: %d vs %d", len(a), len(b))
	}
	sum := make([]Level, len(a))
	carry := cin
	for i := range a {
		sum[i], carry = FullAdd(a[i], b[i], carry)
	}
	return sum, carry, nil
}
