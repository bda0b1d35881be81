package provision

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/prismctl/internal/prism"
	"github.com/imamik/prismctl/internal/prompt"
)

// TestWizardScenarios is the entry point for the Ginkgo wizard scenarios.
func TestWizardScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Wizard Scenario Suite")
}

var _ = Describe("Wizard", func() {
	var (
		ctx context.Context
		inv *fakeInventory
		sub *fakeSubmitter
	)

	BeforeEach(func() {
		ctx = context.Background()
		inv = testInventory()
		sub = &fakeSubmitter{}
	})

	run := func(answers ...string) (*Result, *scriptedConsole, error) {
		c := newScriptedConsole(answers...)
		result, err := NewWizard(c, inv, sub).Run(ctx)
		return result, c, err
	}

	Context("with one SCSI disk and one DHCP NIC", func() {
		It("submits the composed request once", func() {
			result, _, err := run(script(
				shapeAnswers("app01", "2", "1", "2048"),
				[]string{"SCSI", "Y", "default-container", "10240", "Y", "N"},
				[]string{"Y", "vlan10", "Y", "N", "N"},
			)...)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(StateDone))
			Expect(sub.calls).To(Equal(1))
			Expect(sub.spec.VMDisks).To(HaveLen(1))
			Expect(sub.spec.VMDisks[0].DiskAddress.DeviceBus).To(Equal("SCSI"))
			Expect(sub.spec.VMDisks[0].VMDiskCreate.StorageContainerUUID).To(Equal("c-uuid-1"))
			Expect(sub.spec.VMNics).To(ConsistOf(prism.VMNicSpec{NetworkUUID: "n-uuid-1"}))
		})
	})

	Context("with an IDE disk", func() {
		It("never asks for a container", func() {
			_, c, err := run(script(
				shapeAnswers("iso01", "1", "1", "1024"),
				[]string{"IDE", "Y", "N", "N"},
			)...)

			Expect(err).NotTo(HaveOccurred())
			Expect(c.asked("Please enter a Container Name for placing the VM:")).To(BeZero())
			Expect(sub.spec.VMDisks[0].IsCdrom).To(BeTrue())
			Expect(sub.spec.VMDisks[0].IsEmpty).To(BeTrue())
			Expect(sub.spec.VMDisks[0].VMDiskCreate).To(BeNil())
		})
	})

	Context("with a static IP request", func() {
		It("carries the address into the NIC", func() {
			_, _, err := run(script(
				shapeAnswers("app02", "1", "1", "1024"),
				[]string{"IDE", "Y", "N"},
				[]string{"Y", "isolated", "Y", "Y", "172.16.0.10", "Y", "N"},
			)...)

			Expect(err).NotTo(HaveOccurred())
			Expect(sub.spec.VMNics).To(ConsistOf(prism.VMNicSpec{
				NetworkUUID:        "n-uuid-2",
				RequestIP:          true,
				RequestedIPAddress: "172.16.0.10",
			}))
		})
	})

	Context("when no NICs are added", func() {
		It("submits an empty NIC list", func() {
			result, c, err := run(script(
				shapeAnswers("bare01", "1", "1", "512"),
				[]string{"PCI", "Y", "fast-ssd", "100", "Y", "N"},
				[]string{"N"},
			)...)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Request.NICs).To(BeEmpty())
			Expect(sub.spec.VMNics).NotTo(BeNil())
			Expect(c.asked("Please enter a Network Name for the NIC:")).To(BeZero())
		})
	})

	DescribeTable("confirmation accepts only an exact Y",
		func(answer string) {
			_, c, err := run(script(
				[]string{"vm", "1", "1", "512", answer},
				shapeAnswers("vm", "1", "1", "512"),
				[]string{"IDE", "Y", "N", "N"},
			)...)

			Expect(err).NotTo(HaveOccurred())
			Expect(c.asked("Please enter a VM Name:")).To(Equal(2))
		},
		Entry("lowercase", "y"),
		Entry("word", "yes"),
		Entry("empty", ""),
		Entry("no", "N"),
	)

	DescribeTable("disk count is one more than the number of Y answers",
		func(more int) {
			answers := shapeAnswers("vm", "1", "1", "512")
			for i := 0; i < more; i++ {
				answers = append(answers, "IDE", "Y", "Y")
			}
			answers = append(answers, "IDE", "Y", "N", "N")

			_, _, err := run(answers...)
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.spec.VMDisks).To(HaveLen(more + 1))
		},
		Entry("none", 0),
		Entry("one", 1),
		Entry("three", 3),
	)

	It("aborts without submitting when input ends", func() {
		result, _, err := run("vm", "1", "1", "512", "Y", "SCSI")

		Expect(err).To(MatchError(prompt.ErrInputClosed))
		Expect(result.State).To(Equal(StateFatal))
		Expect(sub.calls).To(BeZero())
	})
})
