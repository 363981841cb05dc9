package digital

// Gate truth rules on the {U, X, 0, 1} subset: a dominant input decides
// the output regardless of unknowns, otherwise U beats X beats a
// determined value.

func and2(a, b Level) Level {
	a, b = a.u01x(), b.u01x()
	switch {
	case a == Logic0 || b == Logic0:
		return Logic0
	case a == LogicU || b == LogicU:
		return LogicU
	case a == LogicX || b == LogicX:
		return LogicX
	}
	return Logic1
}

func or2(a, b Level) Level {
	a, b = a.u01x(), b.u01x()
	switch {
	case a == Logic1 || b == Logic1:
		return Logic1
	case a == LogicU || b == LogicU:
		return LogicU
	case a == LogicX || b == LogicX:
		return LogicX
	}
	return Logic0
}

func xor2(a, b Level) Level {
	a, b = a.u01x(), b.u01x()
	switch {
	case a == LogicU || b == LogicU:
		return LogicU
	case a == LogicX || b == LogicX:
		return LogicX
	case a == b:
		return Logic0
	}
	return Logic1
}

// Not inverts a level; unknowns stay unknown.
func Not(a Level) Level {
	switch a.u01x() {
	case Logic0:
		return Logic1
	case Logic1:
		return Logic0
	case LogicU:
		return LogicU
	}
	return LogicX
}

// Buf normalizes a level to a strong drive.
func Buf(a Level) Level {
	return a.u01x()
}

// And folds and2 over the inputs. No inputs yield the identity 1.
func And(in ...Level) Level {
	out := Logic1
	for _, l := range in {
		out = and2(out, l)
	}
	return out
}

// Or folds or2 over the inputs. No inputs yield the identity 0.
func Or(in ...Level) Level {
	out := Logic0
	for _, l := range in {
		out = or2(out, l)
	}
	return out
}

// Nand is the inverted And.
func Nand(in ...Level) Level { return Not(And(in...)) }

// Nor is the inverted Or.
func Nor(in ...Level) Level { return Not(Or(in...)) }

// Xor folds xor2 over the inputs, computing parity.
func Xor(in ...Level) Level {
	out := Logic0
	for _, l := range in {
		out = xor2(out, l)
	}
	return out
}

// Xnor is the inverted Xor.
func Xnor(in ...Level) Level { return Not(Xor(in...)) }
