package electrical

import (
	"fmt"

	"phynet/internal/network"
)

// VCVS is a voltage-controlled voltage source: the output branch forces
// v(p)-v(n) = Gain * (v(cp)-v(cn)). The control pins draw no current.
type VCVS struct {
	network.Base
	Gain float64
}

// NewVCVS returns a voltage-controlled voltage source.
func NewVCVS(name string, gain float64) *VCVS {
	return &VCVS{Base: network.NewBase(name), Gain: gain}
}

func (s *VCVS) Ports() []network.Port {
	return []network.Port{
		{Name: "p", Domain: network.Electrical},
		{Name: "n", Domain: network.Electrical},
		{Name: "cp", Domain: network.Electrical},
		{Name: "cn", Domain: network.Electrical},
	}
}

func (s *VCVS) BranchCount() int { return 1 }

func (s *VCVS) Stamp(st *network.Stamp) {
	p, n, cp, cn := s.Node(0), s.Node(1), s.Node(2), s.Node(3)
	r := st.BranchRow(s.Branch(0))

	st.Add(p, r, 1)
	st.Add(n, r, -1)
	st.Add(r, p, 1)
	st.Add(r, n, -1)
	st.Add(r, cp, -s.Gain)
	st.Add(r, cn, s.Gain)
}

// VCCS is a voltage-controlled current source: it drives
// Gain * (v(cp)-v(cn)) from p to n through itself.
type VCCS struct {
	network.Base
	Gain float64
}

// NewVCCS returns a voltage-controlled current source with
// transconductance gain in siemens.
func NewVCCS(name string, gain float64) *VCCS {
	return &VCCS{Base: network.NewBase(name), Gain: gain}
}

func (s *VCCS) Ports() []network.Port {
	return []network.Port{
		{Name: "p", Domain: network.Electrical},
		{Name: "n", Domain: network.Electrical},
		{Name: "cp", Domain: network.Electrical},
		{Name: "cn", Domain: network.Electrical},
	}
}

func (s *VCCS) Stamp(st *network.Stamp) {
	p, n, cp, cn := s.Node(0), s.Node(1), s.Node(2), s.Node(3)

	st.Add(p, cp, s.Gain)
	st.Add(p, cn, -s.Gain)
	st.Add(n, cp, -s.Gain)
	st.Add(n, cn, s.Gain)
}

// CCCS is a current-controlled current source. The controlling current is
// read from a CurrentSensor, referenced directly or by name for netlist
// use.
type CCCS struct {
	network.Base
	Gain       float64
	Sensor     *CurrentSensor
	SensorName string
}

// NewCCCS returns a current-controlled current source reading its control
// current from the given sensor.
func NewCCCS(name string, gain float64, sensor *CurrentSensor) *CCCS {
	return &CCCS{Base: network.NewBase(name), Gain: gain, Sensor: sensor}
}

func (s *CCCS) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (s *CCCS) Link(find func(string) (network.Component, bool)) error {
	return linkSensor(s.Name(), &s.Sensor, s.SensorName, find)
}

func (s *CCCS) Validate() error {
	if s.Sensor == nil {
		return fmt.Errorf("%w: no control sensor wired", network.ErrParameterBounds)
	}
	return nil
}

func (s *CCCS) Stamp(st *network.Stamp) {
	p, n := s.Node(0), s.Node(1)
	col := st.BranchRow(s.Sensor.Branch(0))

	st.Add(p, col, s.Gain)
	st.Add(n, col, -s.Gain)
}

// CCVS is a current-controlled voltage source (a transresistance).
type CCVS struct {
	network.Base
	Gain       float64
	Sensor     *CurrentSensor
	SensorName string
}

// NewCCVS returns a current-controlled voltage source with
// transresistance gain in ohms.
func NewCCVS(name string, gain float64, sensor *CurrentSensor) *CCVS {
	return &CCVS{Base: network.NewBase(name), Gain: gain, Sensor: sensor}
}

func (s *CCVS) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (s *CCVS) BranchCount() int { return 1 }

func (s *CCVS) Link(find func(string) (network.Component, bool)) error {
	return linkSensor(s.Name(), &s.Sensor, s.SensorName, find)
}

func (s *CCVS) Validate() error {
	if s.Sensor == nil {
		return fmt.Errorf("%w: no control sensor wired", network.ErrParameterBounds)
	}
	return nil
}

func (s *CCVS) Stamp(st *network.Stamp) {
	p, n := s.Node(0), s.Node(1)
	r := st.BranchRow(s.Branch(0))
	col := st.BranchRow(s.Sensor.Branch(0))

	st.Add(p, r, 1)
	st.Add(n, r, -1)
	st.Add(r, p, 1)
	st.Add(r, n, -1)
	st.Add(r, col, -s.Gain)
}

func linkSensor(owner string, dst **CurrentSensor, name string, find func(string) (network.Component, bool)) error {
	if *dst != nil || name == "" {
		return nil
	}
	c, ok := find(name)
	if !ok {
		return fmt.Errorf("electrical: %s: unknown sensor %q", owner, name)
	}
	cs, ok := c.(*CurrentSensor)
	if !ok {
		return fmt.Errorf("electrical: %s: component %q is not a current sensor", owner, name)
	}
	*dst = cs
	return nil
}
