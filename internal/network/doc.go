// Package network models physical systems as connected components.
//
// A component exposes ports; each port belongs to a physical domain and
// carries two quantities: an across value measured against the domain's
// reference (voltage, velocity, temperature, pressure, magnetomotive
// force) and a through value that flows along connections (current, force,
// heat flow, mass flow, magnetic flux). Connecting pins merges them into a
// junction where all across values coincide and through values sum to
// zero. This is Kirchhoff's current law generalized across domains.
//
// The package provides:
//
//   - Component, the interface every element implements, plus the optional
//     Validator, Branched, Stateful and Linker capabilities
//   - Network, the builder that merges pins into junctions and assigns
//     dense unknown indices
//   - System, the flattened model handed to the solver
//   - Stamp, the assembly context components write their equation
//     contributions into
//
// # Example
//
//	net := network.New("divider")
//	net.AddAll(
//	    electrical.NewVoltageSource("v1", blocks.Constant{K: 10}),
//	    electrical.NewResistor("r1", 1e3),
//	    electrical.NewResistor("r2", 1e3),
//	)
//	net.Connect("in", "v1.p", "r1.p")
//	net.Connect("out", "r1.n", "r2.p")
//	net.Ground("v1.n", "r2.n")
//	sys, err := net.Flatten()
//
// # Thread Safety
//
// Network and System are not safe for concurrent use. Build and flatten a
// network on one goroutine, then hand the System to a single solver.
package network
