// Package digital implements nine-valued combinational logic: the level
// set distinguishes strong and weak drives, high impedance and unknowns,
// so bus contention and floating inputs propagate honestly instead of
// collapsing to booleans.
//
// Levels follow the usual nine-value convention:
//
//   - U: uninitialized
//   - X: strong unknown
//   - 0: strong low
//   - 1: strong high
//   - Z: high impedance
//   - W: weak unknown
//   - L: weak low
//   - H: weak high
//   - -: don't care
//
// Gate helpers operate on levels directly; Circuit wires gates to named
// nets and sweeps them to a fixpoint.
package digital

import "fmt"

// Level is one value of the nine-level logic alphabet.
type Level uint8

const (
	LogicU Level = iota
	LogicX
	Logic0
	Logic1
	LogicZ
	LogicW
	LogicL
	LogicH
	LogicDC

	numLevels = 9
)

var levelNames = [numLevels]string{"U", "X", "0", "1", "Z", "W", "L", "H", "-"}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
	return levelNames[l]
}

// Valid reports whether l is one of the nine defined levels.
func (l Level) Valid() bool { return l < numLevels }

// resolve is the wired-bus resolution table: the row is the stronger
// driver only where drive strength wins, U absorbs everything and
// conflicting strong drives collapse to X.
var resolve = [numLevels][numLevels]Level{
	//        U       X       0       1       Z       W       L       H       -
	{LogicU, LogicU, LogicU, LogicU, LogicU, LogicU, LogicU, LogicU, LogicU},
	{LogicU, LogicX, LogicX, LogicX, LogicX, LogicX, LogicX, LogicX, LogicX},
	{LogicU, LogicX, Logic0, LogicX, Logic0, Logic0, Logic0, Logic0, LogicX},
	{LogicU, LogicX, LogicX, Logic1, Logic1, Logic1, Logic1, Logic1, LogicX},
	{LogicU, LogicX, Logic0, Logic1, LogicZ, LogicW, LogicL, LogicH, LogicX},
	{LogicU, LogicX, Logic0, Logic1, LogicW, LogicW, LogicW, LogicW, LogicX},
	{LogicU, LogicX, Logic0, Logic1, LogicL, LogicW, LogicL, LogicW, LogicX},
	{LogicU, LogicX, Logic0, Logic1, LogicH, LogicW, LogicW, LogicH, LogicX},
	{LogicU, LogicX, LogicX, LogicX, LogicX, LogicX, LogicX, LogicX, LogicX},
}

// Resolve combines two drivers of the same net.
func Resolve(a, b Level) Level {
	if !a.Valid() || !b.Valid() {
		return LogicU
	}
	return resolve[a][b]
}

// ResolveAll folds Resolve over any number of drivers. No drivers leave
// the net floating.
func ResolveAll(drivers ...Level) Level {
	out := LogicZ
	for _, d := range drivers {
		out = Resolve(out, d)
	}
	return out
}

// x01 strips drive strength: weak levels map to their strong value,
// everything indeterminate maps to X.
var x01 = [numLevels]Level{
	LogicX, LogicX, Logic0, Logic1, LogicX, LogicX, Logic0, Logic1, LogicX,
}

// X01 normalizes l to the {X, 0, 1} subset.
func (l Level) X01() Level {
	if !l.Valid() {
		return LogicX
	}
	return x01[l]
}

// u01x normalizes like X01 but keeps U distinct so gates can propagate
// uninitialized inputs.
func (l Level) u01x() Level {
	if l == LogicU {
		return LogicU
	}
	return l.X01()
}

// Bool reports the boolean value of l and whether it is determined.
func (l Level) Bool() (value, known bool) {
	switch l.X01() {
	case Logic0:
		return false, true
	case Logic1:
		return true, true
	}
	return false, false
}

// FromBool lifts a boolean to a strong level.
func FromBool(b bool) Level {
	if b {
		return Logic1
	}
	return Logic0
}
