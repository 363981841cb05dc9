package netlist_test

import (
	"context"
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"phynet/internal/catalog"
	"phynet/internal/netlist"
	"phynet/internal/network"
	"phynet/internal/solver"
)

func writeModel(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
	return path
}

var _ = Describe("loading a model file", func() {
	var (
		dir string
		reg *catalog.Registry
		ctx context.Context
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		reg = catalog.Default()
		ctx = context.Background()
	})

	Context("with a complete RC discharge model", func() {
		const rcModel = `
model "rc-discharge" {}

component "electrical.resistor" "r1" {
  resistance = 1000
}

component "electrical.capacitor" "c1" {
  capacitance     = 1e-6
  initial_voltage = 1
}

connect "out" {
  pins = ["r1.p", "c1.p"]
}

ground {
  pins = ["r1.n", "c1.n"]
}

analysis "transient" {
  dt       = 1e-5
  duration = 3e-3
  method   = "trapezoidal"
}

probe {
  signals = ["out"]
}
`

		It("builds the network, the analysis and the probes", func() {
			model, err := netlist.Load(ctx, writeModel(dir, "rc.hcl", rcModel), reg)
			Expect(err).NotTo(HaveOccurred())

			Expect(model.Name).To(Equal("rc-discharge"))
			Expect(model.Network.Components()).To(HaveLen(2))
			Expect(model.Probes).To(ConsistOf("out"))

			Expect(model.Analyses).To(HaveLen(1))
			a := model.Analyses[0]
			Expect(a.Kind).To(Equal("transient"))
			Expect(a.Config.Dt).To(BeNumerically("==", 1e-5))
			Expect(a.Config.Method).To(Equal(network.Trapezoidal))
		})

		It("solves to the closed-form discharge curve", func() {
			model, err := netlist.Load(ctx, writeModel(dir, "rc.hcl", rcModel), reg)
			Expect(err).NotTo(HaveOccurred())

			sys, err := model.Network.Flatten()
			Expect(err).NotTo(HaveOccurred())

			res, err := solver.New(sys).Transient(ctx, model.Analyses[0].Config)
			Expect(err).NotTo(HaveOccurred())

			// v(t) = e^(-t/RC) with RC = 1 ms.
			want := math.Exp(-3.0)
			got, err := res.Final("out")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNumerically("~", want, 2e-3))
		})
	})

	Context("with waveform-driven sources", func() {
		It("decodes signal objects into waveforms", func() {
			path := writeModel(dir, "sine.hcl", `
component "electrical.voltage_source" "v1" {
  voltage = { shape = "sine", amplitude = 5, frequency = 50 }
}
component "electrical.resistor" "r1" {
  resistance = 100
}
connect "out" { pins = ["v1.p", "r1.p"] }
ground { pins = ["v1.n", "r1.n"] }
analysis "op" {}
`)
			model, err := netlist.Load(ctx, path, reg)
			Expect(err).NotTo(HaveOccurred())

			sys, err := model.Network.Flatten()
			Expect(err).NotTo(HaveOccurred())

			res, err := solver.New(sys).OperatingPoint(ctx, model.Analyses[0].Config)
			Expect(err).NotTo(HaveOccurred())

			// sin(0) = 0, so the node rests at zero volts.
			Expect(res.Final("out")).To(BeNumerically("~", 0, 1e-9))
		})

		It("rejects an unknown signal shape", func() {
			path := writeModel(dir, "bad.hcl", `
component "electrical.voltage_source" "v1" {
  voltage = { shape = "sawtooth" }
}
`)
			_, err := netlist.Load(ctx, path, reg)
			Expect(err).To(MatchError(ContainSubstring("sawtooth")))
		})
	})

	Context("with malformed models", func() {
		It("reports an unknown component type with alternatives", func() {
			path := writeModel(dir, "bad.hcl", `
component "electrical.memristor" "m1" {}
`)
			_, err := netlist.Load(ctx, path, reg)
			Expect(err).To(MatchError(catalog.ErrUnknownType))
			Expect(err.Error()).To(ContainSubstring("electrical.resistor"))
		})

		It("reports a misspelled parameter", func() {
			path := writeModel(dir, "bad.hcl", `
component "electrical.resistor" "r1" {
  resistance = 1000
  tolerance  = 0.01
}
`)
			_, err := netlist.Load(ctx, path, reg)
			Expect(err).To(MatchError(ContainSubstring("tolerance")))
		})

		It("reports a connection to an undeclared pin", func() {
			path := writeModel(dir, "bad.hcl", `
component "electrical.resistor" "r1" {
  resistance = 1000
}
connect "out" { pins = ["r1.p", "r2.p"] }
`)
			_, err := netlist.Load(ctx, path, reg)
			Expect(err).To(MatchError(network.ErrUnknownPin))
			Expect(err.Error()).To(ContainSubstring("r2.p"))
		})

		It("reports a cross-domain connection", func() {
			path := writeModel(dir, "bad.hcl", `
component "electrical.resistor" "r1" {
  resistance = 1000
}
component "thermal.conductor" "g1" {
  conductance = 5
}
connect "x" { pins = ["r1.p", "g1.a"] }
`)
			_, err := netlist.Load(ctx, path, reg)
			Expect(err).To(MatchError(network.ErrDomainMismatch))
		})

		It("rejects an unknown analysis kind", func() {
			path := writeModel(dir, "bad.hcl", `
component "electrical.resistor" "r1" {
  resistance = 1000
}
analysis "ac" {}
`)
			_, err := netlist.Load(ctx, path, reg)
			Expect(err).To(MatchError(ContainSubstring(`unknown analysis kind "ac"`)))
		})

		It("fails on files that do not parse", func() {
			path := writeModel(dir, "bad.hcl", `component "unterminated {`)
			_, err := netlist.Load(ctx, path, reg)
			Expect(err).To(MatchError(ContainSubstring("parse")))
		})
	})
})
