package network

import (
	"errors"
	"testing"
)

// twoPin is a minimal resistive element for builder tests.
type twoPin struct {
	Base
	domain Domain
	g      float64
}

func newTwoPin(name string, d Domain, g float64) *twoPin {
	return &twoPin{Base: NewBase(name), domain: d, g: g}
}

func (c *twoPin) Ports() []Port { return PortPair(c.domain, "p", "n") }

func (c *twoPin) Stamp(st *Stamp) { st.Conductance(c.Node(0), c.Node(1), c.g) }

// branchPin carries one auxiliary unknown.
type branchPin struct {
	twoPin
}

func (c *branchPin) BranchCount() int { return 1 }

func (c *branchPin) Stamp(st *Stamp) {
	st.PotentialSource(c.Node(0), c.Node(1), c.Branch(0), 1.0)
}

// badParam always fails validation.
type badParam struct {
	twoPin
}

func (c *badParam) Validate() error { return ErrParameterBounds }

func TestAddRejectsDuplicateNames(t *testing.T) {
	net := New("test")
	if err := net.Add(newTwoPin("r1", Electrical, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := net.Add(newTwoPin("r1", Electrical, 1))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestConnectUnknownPin(t *testing.T) {
	net := New("test")
	net.Add(newTwoPin("r1", Electrical, 1))
	err := net.Connect("", "r1.p", "r2.p")
	if !errors.Is(err, ErrUnknownPin) {
		t.Errorf("expected ErrUnknownPin, got %v", err)
	}
}

func TestConnectDomainMismatch(t *testing.T) {
	net := New("test")
	net.Add(newTwoPin("r1", Electrical, 1))
	net.Add(newTwoPin("k1", Thermal, 1))
	err := net.Connect("", "r1.p", "k1.p")
	if !errors.Is(err, ErrDomainMismatch) {
		t.Errorf("expected ErrDomainMismatch, got %v", err)
	}
}

func TestConnectDomainMismatchLeavesPinsUnmerged(t *testing.T) {
	net := New("test")
	net.Add(newTwoPin("r1", Electrical, 1))
	net.Add(newTwoPin("r2", Electrical, 1))
	net.Add(newTwoPin("k1", Thermal, 1))
	err := net.Connect("", "r1.p", "r2.p", "k1.p")
	if !errors.Is(err, ErrDomainMismatch) {
		t.Fatalf("expected ErrDomainMismatch, got %v", err)
	}
	// The rejected connect must not have merged the electrical pins.
	if net.find("r1.p") == net.find("r2.p") {
		t.Error("failed connect merged r1.p and r2.p")
	}
}

func TestFlattenEmptyNetwork(t *testing.T) {
	net := New("test")
	_, err := net.Flatten()
	if !errors.Is(err, ErrEmptyNetwork) {
		t.Errorf("expected ErrEmptyNetwork, got %v", err)
	}
}

func TestFlattenAllGrounded(t *testing.T) {
	net := New("test")
	net.Add(newTwoPin("r1", Electrical, 1))
	net.Ground("r1.p", "r1.n")
	_, err := net.Flatten()
	if !errors.Is(err, ErrAllGrounded) {
		t.Errorf("expected ErrAllGrounded, got %v", err)
	}
}

func TestFlattenAssignsNodes(t *testing.T) {
	net := New("test")
	a := newTwoPin("a", Electrical, 1)
	b := newTwoPin("b", Electrical, 1)
	net.AddAll(a, b)
	if err := net.Connect("mid", "a.n", "b.p"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	net.Ground("b.n")

	sys, err := net.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// a.p and the merged a.n/b.p junction remain; b.n is gone.
	if sys.Nodes != 2 {
		t.Errorf("expected 2 nodes, got %d", sys.Nodes)
	}
	if a.Node(1) != b.Node(0) {
		t.Errorf("connected pins resolved to different nodes: %d vs %d", a.Node(1), b.Node(0))
	}
	if b.Node(1) != Ground {
		t.Errorf("expected grounded pin to resolve to Ground, got %d", b.Node(1))
	}
}

func TestFlattenJunctionLabels(t *testing.T) {
	net := New("test")
	a := newTwoPin("a", Electrical, 1)
	b := newTwoPin("b", Electrical, 1)
	net.AddAll(a, b)
	net.Connect("mid", "a.n", "b.p")
	net.Ground("b.n")

	sys, err := net.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	labels := sys.Labels()
	want := map[string]bool{"a.p": false, "mid": false}
	for _, l := range labels {
		if _, ok := want[l]; ok {
			want[l] = true
		}
	}
	for l, seen := range want {
		if !seen {
			t.Errorf("expected label %q in %v", l, labels)
		}
	}
}

func TestFlattenBranchAssignment(t *testing.T) {
	net := New("test")
	v := &branchPin{twoPin: *newTwoPin("v1", Electrical, 0)}
	r := newTwoPin("r1", Electrical, 1)
	net.AddAll(v, r)
	net.Connect("", "v1.p", "r1.p")
	net.Ground("v1.n", "r1.n")

	sys, err := net.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sys.Branches != 1 {
		t.Errorf("expected 1 branch, got %d", sys.Branches)
	}
	if sys.Size() != 2 {
		t.Errorf("expected 2 unknowns, got %d", sys.Size())
	}
	if got := sys.BranchLabels[0]; got != "v1" {
		t.Errorf("expected branch label v1, got %q", got)
	}
}

func TestFlattenValidation(t *testing.T) {
	net := New("test")
	net.Add(&badParam{twoPin: *newTwoPin("bad", Electrical, 1)})
	_, err := net.Flatten()
	if !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestStampGroundSkipped(t *testing.T) {
	st := NewStamp(2, 0)
	st.Conductance(0, Ground, 2.0)
	st.Conductance(0, 1, 1.0)

	if got := st.A.At(0, 0); got != 3.0 {
		t.Errorf("expected diagonal 3.0, got %f", got)
	}
	if got := st.A.At(1, 1); got != 1.0 {
		t.Errorf("expected diagonal 1.0, got %f", got)
	}
	if got := st.A.At(0, 1); got != -1.0 {
		t.Errorf("expected off-diagonal -1.0, got %f", got)
	}
}

func TestStampFlowSigns(t *testing.T) {
	st := NewStamp(2, 0)
	st.Flow(0, 1, 2.5)
	if got := st.Z.AtVec(0); got != -2.5 {
		t.Errorf("expected -2.5 leaving junction 0, got %f", got)
	}
	if got := st.Z.AtVec(1); got != 2.5 {
		t.Errorf("expected +2.5 entering junction 1, got %f", got)
	}
}

func TestStampAcrossGroundReadsZero(t *testing.T) {
	st := NewStamp(1, 0)
	st.X.SetVec(0, 4.2)
	if got := st.Across(Ground); got != 0 {
		t.Errorf("expected ground to read zero, got %f", got)
	}
	if got := st.Across(0); got != 4.2 {
		t.Errorf("expected 4.2, got %f", got)
	}
}
