package phys

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPhys(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Phys Suite")
}
