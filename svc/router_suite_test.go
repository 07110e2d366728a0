package svc

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestSvc(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "svc router/cache suite")
}
