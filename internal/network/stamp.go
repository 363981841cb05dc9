package network

import "gonum.org/v1/gonum/mat"

// Mode selects what kind of solution the stamp is being assembled for.
type Mode int

const (
	// OperatingPoint solves the steady state: storage elements stop
	// exchanging flow with their rate terms (capacitor-like elements
	// open, inductor-like elements short).
	OperatingPoint Mode = iota

	// InitialConditions solves a consistent state at t=0 with storage
	// elements pinned to their initial values.
	InitialConditions

	// Transient integrates storage elements with the configured Method.
	Transient
)

func (m Mode) String() string {
	switch m {
	case OperatingPoint:
		return "operating-point"
	case InitialConditions:
		return "initial-conditions"
	case Transient:
		return "transient"
	}
	return "unknown"
}

// Method selects the implicit integration rule for storage elements.
type Method int

const (
	// BackwardEuler is first order and strongly damped. It never
	// oscillates, which makes it the safe default for stiff networks.
	BackwardEuler Method = iota

	// Trapezoidal is second order and preserves oscillation amplitude,
	// at the cost of ringing on discontinuities.
	Trapezoidal
)

func (m Method) String() string {
	switch m {
	case BackwardEuler:
		return "backward-euler"
	case Trapezoidal:
		return "trapezoidal"
	}
	return "unknown"
}

// Stamp is the assembly context for one Newton iteration. Components write
// the linearization of their constitutive laws into A and Z; the solver
// then solves A*x = Z for the next iterate. Rows and columns 0..Nodes-1
// are junction equations, the rest are branch equations. Contributions
// addressed to Ground are dropped, which eliminates the reference row and
// keeps A nonsingular.
type Stamp struct {
	nodes int
	size  int

	// A and Z are the linear system of the current iterate.
	A *mat.Dense
	Z *mat.VecDense

	// X is the current Newton iterate. Nonlinear components read it to
	// linearize around. After a converged solve it holds the solution.
	X *mat.VecDense

	// Prev holds the solution of the last accepted time point.
	Prev *mat.VecDense

	// Time is the time being solved for, Dt the step size (zero outside
	// transient mode).
	Time float64
	Dt   float64

	Mode   Mode
	Method Method

	// Gmin is the leak conductance the solver adds on junction
	// diagonals. Components may reuse it for their own regularization.
	Gmin float64
}

// NewStamp allocates an assembly context for a system with the given
// unknown counts.
func NewStamp(nodes, branches int) *Stamp {
	size := nodes + branches
	return &Stamp{
		nodes: nodes,
		size:  size,
		A:     mat.NewDense(size, size, nil),
		Z:     mat.NewVecDense(size, nil),
		X:     mat.NewVecDense(size, nil),
		Prev:  mat.NewVecDense(size, nil),
	}
}

// Nodes returns the number of junction unknowns.
func (st *Stamp) Nodes() int { return st.nodes }

// Size returns the total unknown count, junctions plus branches.
func (st *Stamp) Size() int { return st.size }

// Clear zeroes the system for the next assembly pass. The iterate and the
// previous solution are kept.
func (st *Stamp) Clear() {
	st.A.Zero()
	st.Z.Zero()
}

// Add accumulates v into A[i][j]. Ground rows and columns are skipped.
func (st *Stamp) Add(i, j NodeID, v float64) {
	if i > Ground && j > Ground {
		st.A.Set(int(i), int(j), st.A.At(int(i), int(j))+v)
	}
}

// AddRhs accumulates v into Z[i]. The ground row is skipped.
func (st *Stamp) AddRhs(i NodeID, v float64) {
	if i > Ground {
		st.Z.SetVec(int(i), st.Z.AtVec(int(i))+v)
	}
}

// Conductance stamps the linear law f = g*(across(p)-across(n)) between
// two junctions.
func (st *Stamp) Conductance(p, n NodeID, g float64) {
	st.Add(p, p, g)
	st.Add(n, n, g)
	st.Add(p, n, -g)
	st.Add(n, p, -g)
}

// Flow stamps a fixed through source driving f from p into n through the
// component, i.e. injecting f into junction n.
func (st *Stamp) Flow(p, n NodeID, f float64) {
	st.AddRhs(p, -f)
	st.AddRhs(n, f)
}

// BranchRow converts a branch id to its row and column index.
func (st *Stamp) BranchRow(b BranchID) NodeID {
	return NodeID(st.nodes + int(b))
}

// PotentialSource stamps the constraint across(p)-across(n) = v carried by
// branch b. The branch unknown becomes the through value delivered by the
// source.
func (st *Stamp) PotentialSource(p, n NodeID, b BranchID, v float64) {
	r := st.BranchRow(b)
	st.Add(p, r, 1)
	st.Add(n, r, -1)
	st.Add(r, p, 1)
	st.Add(r, n, -1)
	st.AddRhs(r, v)
}

// Across returns the iterate's across value at a junction. Ground reads
// zero.
func (st *Stamp) Across(i NodeID) float64 {
	if i <= Ground {
		return 0
	}
	return st.X.AtVec(int(i))
}

// Branch returns the iterate's value of a branch unknown.
func (st *Stamp) Branch(b BranchID) float64 {
	return st.X.AtVec(st.nodes + int(b))
}

// PrevAcross returns the across value at the last accepted time point.
func (st *Stamp) PrevAcross(i NodeID) float64 {
	if i <= Ground {
		return 0
	}
	return st.Prev.AtVec(int(i))
}

// PrevBranch returns a branch value at the last accepted time point.
func (st *Stamp) PrevBranch(b BranchID) float64 {
	return st.Prev.AtVec(st.nodes + int(b))
}
