package provision

import (
	"errors"
	"fmt"
	"math"
	"net/netip"

	"github.com/imamik/prismctl/internal/prism"
)

// BusType is the virtual device interface of a disk.
type BusType string

// Supported bus types.
const (
	BusSCSI BusType = "SCSI"
	BusIDE  BusType = "IDE"
	BusPCI  BusType = "PCI"
)

// BusTypes lists the accepted bus types in prompt order.
var BusTypes = []BusType{BusSCSI, BusIDE, BusPCI}

// ParseBusType matches s exactly against the supported bus types.
func ParseBusType(s string) (BusType, bool) {
	for _, b := range BusTypes {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}

// MaxDiskSizeMB is the largest disk size whose byte count fits the payload.
const MaxDiskSizeMB int64 = math.MaxInt64 >> 20

// Placement puts a data disk on a storage container.
type Placement struct {
	ContainerID string `json:"containerId"`
	SizeMB      int    `json:"sizeMb"`
}

// DiskSpec describes one disk of the VM.
type DiskSpec struct {
	BusType       BusType    `json:"busType"`
	IsCdrom       bool       `json:"isCdrom"`
	IsEmpty       bool       `json:"isEmpty"`
	IsPassThrough bool       `json:"isPassThrough"`
	Placement     *Placement `json:"placement,omitempty"`
}

// newDiskSpec derives the device flags from the bus type.
func newDiskSpec(bus BusType) DiskSpec {
	ide := bus == BusIDE
	return DiskSpec{
		BusType: bus,
		IsCdrom: ide,
		IsEmpty: ide,
	}
}

// Validate checks the bus-dependent invariants of a disk.
func (d DiskSpec) Validate() error {
	if _, ok := ParseBusType(string(d.BusType)); !ok {
		return fmt.Errorf("unknown bus type %q", d.BusType)
	}
	ide := d.BusType == BusIDE
	if d.IsCdrom != ide || d.IsEmpty != ide {
		return fmt.Errorf("%s disk must have isCdrom=isEmpty=%t", d.BusType, ide)
	}
	if d.IsPassThrough {
		return fmt.Errorf("pass-through disks are not supported")
	}
	if ide && d.Placement != nil {
		return fmt.Errorf("IDE disk must not have a placement")
	}
	if !ide {
		if d.Placement == nil {
			return fmt.Errorf("%s disk requires a placement", d.BusType)
		}
		if d.Placement.ContainerID == "" || d.Placement.SizeMB <= 0 {
			return fmt.Errorf("%s disk placement needs a container and a positive size", d.BusType)
		}
		if int64(d.Placement.SizeMB) > MaxDiskSizeMB {
			return fmt.Errorf("%s disk size %d MB exceeds %d MB", d.BusType, d.Placement.SizeMB, MaxDiskSizeMB)
		}
	}
	return nil
}

// NicSpec describes one network interface of the VM.
type NicSpec struct {
	NetworkID          string `json:"networkId"`
	RequestsStaticIP   bool   `json:"requestsStaticIp"`
	RequestedIPAddress string `json:"requestedIpAddress,omitempty"`
}

// Validate checks that a requested address is present iff a static IP is requested.
func (n NicSpec) Validate() error {
	if n.NetworkID == "" {
		return fmt.Errorf("NIC requires a network")
	}
	if !n.RequestsStaticIP {
		if n.RequestedIPAddress != "" {
			return fmt.Errorf("requested IP address set without a static IP request")
		}
		return nil
	}
	return validateIPv4(n.RequestedIPAddress)
}

// validateIPv4 accepts only dotted-quad IPv4 addresses.
func validateIPv4(s string) error {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return fmt.Errorf("%q is not a valid IPv4 address (expected xxx.xxx.xxx.xxx)", s)
	}
	return nil
}

// VMShape is the compute sizing of the VM.
type VMShape struct {
	Name         string `json:"name"`
	VCPUs        int    `json:"vcpuCount"`
	CoresPerVCPU int    `json:"coresPerVcpu"`
	MemoryMB     int    `json:"memoryMb"`
}

// Validate checks that the name is set and all sizes are positive.
func (s VMShape) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("VM name is required")
	}
	if s.VCPUs <= 0 || s.CoresPerVCPU <= 0 || s.MemoryMB <= 0 {
		return fmt.Errorf("vCPUs, cores per vCPU and memory must be positive")
	}
	return nil
}

// Request is the composite VM creation request.
type Request struct {
	Shape VMShape    `json:"shape"`
	Disks []DiskSpec `json:"disks"`
	NICs  []NicSpec  `json:"nics"`
}

// Validate checks the shape, requires at least one disk and checks every
// disk and NIC. All problems are reported together.
func (r *Request) Validate() error {
	errs := []error{}
	if err := r.Shape.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(r.Disks) == 0 {
		errs = append(errs, fmt.Errorf("at least one disk is required"))
	}
	for i, d := range r.Disks {
		if err := d.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("disk %d: %w", i, err))
		}
	}
	for i, n := range r.NICs {
		if err := n.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("nic %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// CreateSpec converts the request into the Prism v2 create payload.
// Disk sizes are converted from MB to bytes.
func (r *Request) CreateSpec() prism.VMCreateSpec {
	spec := prism.VMCreateSpec{
		Name:            r.Shape.Name,
		NumVCPUs:        r.Shape.VCPUs,
		NumCoresPerVCPU: r.Shape.CoresPerVCPU,
		MemoryMB:        r.Shape.MemoryMB,
		VMDisks:         make([]prism.VMDiskSpec, 0, len(r.Disks)),
		VMNics:          make([]prism.VMNicSpec, 0, len(r.NICs)),
	}

	for _, d := range r.Disks {
		disk := prism.VMDiskSpec{
			DiskAddress:       prism.VMDiskAddress{DeviceBus: string(d.BusType)},
			IsCdrom:           d.IsCdrom,
			IsEmpty:           d.IsEmpty,
			IsSCSIPassThrough: d.IsPassThrough,
		}
		if d.Placement != nil {
			disk.VMDiskCreate = &prism.VMDiskCreate{
				StorageContainerUUID: d.Placement.ContainerID,
				Size:                 int64(d.Placement.SizeMB) << 20,
			}
		}
		spec.VMDisks = append(spec.VMDisks, disk)
	}

	for _, n := range r.NICs {
		spec.VMNics = append(spec.VMNics, prism.VMNicSpec{
			NetworkUUID:        n.NetworkID,
			RequestIP:          n.RequestsStaticIP,
			RequestedIPAddress: n.RequestedIPAddress,
		})
	}

	return spec
}
