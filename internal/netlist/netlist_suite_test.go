package netlist_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestNetlist(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Netlist Suite")
}
