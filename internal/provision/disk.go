package provision

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/imamik/prismctl/internal/inventory"
	"github.com/imamik/prismctl/internal/prism"
	"github.com/imamik/prismctl/internal/prompt"
)

// confirmAnswer is the only answer accepted at a confirmation point.
const confirmAnswer = "Y"

var divider = strings.Repeat("#", 79)

// Inventory is the read side of the session's inventory cache.
type Inventory interface {
	Containers(ctx context.Context) ([]prism.Container, error)
	Networks(ctx context.Context) ([]prism.Network, error)
	ContainerByName(ctx context.Context, name string) (prism.Container, bool, error)
	NetworkByName(ctx context.Context, name string) (prism.Network, bool, error)
}

func confirmed(answer string) bool {
	return answer == confirmAnswer
}

// BuildDisk asks for one disk. IDE disks return without a container prompt.
// It returns inventory.ErrNoContainers when a data disk is requested and the
// cluster has no storage containers.
func BuildDisk(ctx context.Context, c prompt.Console, inv Inventory) (DiskSpec, error) {
	bus, err := askBusType(ctx, c)
	if err != nil {
		return DiskSpec{}, err
	}

	disk := newDiskSpec(bus)
	if bus == BusIDE {
		return disk, nil
	}

	placement, err := askPlacement(ctx, c, inv)
	if err != nil {
		return DiskSpec{}, err
	}
	disk.Placement = placement
	return disk, nil
}

func askBusType(ctx context.Context, c prompt.Console) (BusType, error) {
	for {
		answer, err := c.Ask(ctx, "Please enter Disk type [SCSI/IDE/PCI]:")
		if err != nil {
			return "", err
		}
		bus, ok := ParseBusType(answer)
		if !ok {
			prompt.Println(c, "Please input [SCSI/IDE/PCI]")
			continue
		}

		prompt.Println(c, "Device Bus:"+string(bus))
		answer, err = c.Ask(ctx, "Is it OK? [Y/N]:")
		if err != nil {
			return "", err
		}
		if confirmed(answer) {
			return bus, nil
		}
	}
}

func askPlacement(ctx context.Context, c prompt.Console, inv Inventory) (*Placement, error) {
	for {
		containers, err := inv.Containers(ctx)
		if err != nil {
			return nil, err
		}
		if len(containers) == 0 {
			return nil, inventory.ErrNoContainers
		}

		prompt.Println(c, "Select a container from following containers' list")
		prompt.Println(c, divider)
		for _, name := range inventory.ContainerNames(containers) {
			prompt.Println(c, name)
		}

		name, err := c.Ask(ctx, "Please enter a Container Name for placing the VM:")
		if err != nil {
			return nil, err
		}
		size, err := c.Ask(ctx, "Please enter the size(MB) of disk:")
		if err != nil {
			return nil, err
		}
		answer, err := c.Ask(ctx, fmt.Sprintf("%s (%s MB)? [Y/N]:", name, size))
		if err != nil {
			return nil, err
		}
		if !confirmed(answer) {
			continue
		}

		container, ok, err := inv.ContainerByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			prompt.Printf(c, "Container %q is not in the list\n", name)
			continue
		}
		sizeMB, err := strconv.Atoi(strings.TrimSpace(size))
		if err != nil || sizeMB <= 0 {
			prompt.Printf(c, "Disk size must be a positive number of MB, got %q\n", size)
			continue
		}
		if int64(sizeMB) > MaxDiskSizeMB {
			prompt.Printf(c, "Disk size must not exceed %d MB, got %q\n", MaxDiskSizeMB, size)
			continue
		}

		prompt.Println(c, name+" is selected")
		return &Placement{ContainerID: container.StorageContainerID, SizeMB: sizeMB}, nil
	}
}
