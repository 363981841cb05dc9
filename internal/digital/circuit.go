package digital

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsettled means the gate network kept toggling, which points
	// at a zero-delay feedback loop.
	ErrUnsettled = errors.New("digital: circuit did not settle")

	// ErrUnknownNet means a net name was never driven or wired.
	ErrUnknownNet = errors.New("digital: unknown net")
)

// Gate computes one output level from its input levels.
type Gate func(...Level) Level

type wiredGate struct {
	fn  Gate
	out string
	in  []string
}

// Circuit wires gates to named nets. Nets referenced before any value is
// set start uninitialized. Evaluation is zero-delay: Settle sweeps all
// gates until no net changes.
type Circuit struct {
	levels map[string]Level
	gates  []wiredGate
}

// NewCircuit returns an empty circuit.
func NewCircuit() *Circuit {
	return &Circuit{levels: make(map[string]Level)}
}

// Set drives a net to a level, typically a primary input.
func (c *Circuit) Set(net string, l Level) {
	c.levels[net] = l
}

// AddGate wires a gate function from input nets to an output net. Nets
// are created on first mention.
func (c *Circuit) AddGate(fn Gate, out string, in ...string) {
	c.gates = append(c.gates, wiredGate{fn: fn, out: out, in: in})
	c.touch(out)
	for _, n := range in {
		c.touch(n)
	}
}

func (c *Circuit) touch(net string) {
	if _, ok := c.levels[net]; !ok {
		c.levels[net] = LogicU
	}
}

// Level returns the current level of a net.
func (c *Circuit) Level(net string) (Level, error) {
	l, ok := c.levels[net]
	if !ok {
		return LogicU, fmt.Errorf("%w: %q", ErrUnknownNet, net)
	}
	return l, nil
}

// Settle evaluates gates in sweeps until a full sweep changes nothing,
// and returns the number of sweeps taken. A non-positive maxSweeps picks
// a bound from the gate count. Circuits with zero-delay oscillation
// return ErrUnsettled.
func (c *Circuit) Settle(maxSweeps int) (int, error) {
	if maxSweeps <= 0 {
		maxSweeps = 4 * (len(c.gates) + 1)
	}
	in := make([]Level, 0, 8)
	for sweep := 1; sweep <= maxSweeps; sweep++ {
		changed := false
		for _, g := range c.gates {
			in = in[:0]
			for _, n := range g.in {
				in = append(in, c.levels[n])
			}
			next := g.fn(in...)
			if c.levels[g.out] != next {
				c.levels[g.out] = next
				changed = true
			}
		}
		if !changed {
			return sweep, nil
		}
	}
	return maxSweeps, ErrUnsettled
}
