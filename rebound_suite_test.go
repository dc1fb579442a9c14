package rebound

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRebound(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rebound Suite")
}
