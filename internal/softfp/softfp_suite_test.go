package softfp_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSoftFP(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SoftFP Suite")
}
