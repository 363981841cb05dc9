package digital

import (
	"errors"
	"fmt"
)

var (
	// ErrWidth means a bus width is not the power of two the routing
	// element requires.
	ErrWidth = errors.New("digital: width must be a power of two")

	// ErrSelector means the select bus cannot address the data bus.
	ErrSelector = errors.New("digital: select width does not match data width")
)

// Select is a 2^k-to-1 multiplexer. The select bus is least significant
// bit first and must address exactly len(data) lines. An undetermined
// select level yields X.
func Select(data []Level, sel []Level) (Level, error) {
	n := len(data)
	if n == 0 || n&(n-1) != 0 {
		return LogicX, fmt.Errorf("%w: %d data lines", ErrWidth, n)
	}
	if 1<<len(sel) != n {
		return LogicX, fmt.Errorf("%w: %d select lines for %d data lines", ErrSelector, len(sel), n)
	}
	idx, ok := index(sel)
	if !ok {
		return LogicX, nil
	}
	return Buf(data[idx]), nil
}

// Distribute is the 1-to-2^k demultiplexer: the value is driven on the
// addressed line and the others are held low. An undetermined select
// level makes every line X.
func Distribute(value Level, sel []Level, width int) ([]Level, error) {
	if width <= 0 || width&(width-1) != 0 {
		return nil, fmt.Errorf("%w: %d output lines", ErrWidth, width)
	}
	if 1<<len(sel) != width {
		return nil, fmt.Errorf("%w: %d select lines for %d output lines", ErrSelector, len(sel), width)
	}
	out := make([]Level, width)
	idx, ok := index(sel)
	if !ok {
		for i := range out {
			out[i] = LogicX
		}
		return out, nil
	}
	for i := range out {
		out[i] = Logic0
	}
	out[idx] = Buf(value)
	return out, nil
}

func index(sel []Level) (int, bool) {
	idx := 0
	for i, s := range sel {
		v, known := s.Bool()
		if !known {
			return 0, false
		}
		if v {
			idx |= 1 << i
		}
	}
	return idx, true
}

// FromUint expands the low bits of v onto a bus, least significant bit
// first.
func FromUint(v uint64, width int) []Level {
	out := make([]Level, width)
	for i := range out {
		out[i] = FromBool(v>>i&1 == 1)
	}
	return out
}

// ToUint packs a bus into an integer. The second result is false when
// any line is undetermined.
func ToUint(bits []Level) (uint64, bool) {
	var v uint64
	for i, b := range bits {
		set, known := b.Bool()
		if !known {
			return 0, false
		}
		if set {
			v |= 1 << i
		}
	}
	return v, true
}
