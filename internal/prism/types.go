package prism

import (
	"encoding/json"
	"net/http"
)

// Container is a storage container snapshot taken from the cluster inventory.
type Container struct {
	Name               string `json:"name" yaml:"name"`
	StorageContainerID string `json:"storageContainerId" yaml:"storageContainerId"`
	MaxCapacity        int64  `json:"maxCapacity" yaml:"maxCapacity"`
}

// Network is a virtual network snapshot taken from the cluster inventory.
// NetworkAddress is empty when the network carries no IP configuration.
type Network struct {
	Name           string `json:"name" yaml:"name"`
	NetworkID      string `json:"networkId" yaml:"networkId"`
	VLANID         int    `json:"vlanId" yaml:"vlanId"`
	NetworkAddress string `json:"networkAddress,omitempty" yaml:"networkAddress,omitempty"`
}

// Cluster summarizes the cluster the session is connected to.
type Cluster struct {
	Name            string   `json:"name" yaml:"name"`
	ID              string   `json:"id" yaml:"id"`
	ExternalIP      string   `json:"externalIp" yaml:"externalIp"`
	NumNodes        int      `json:"numNodes" yaml:"numNodes"`
	Version         string   `json:"version" yaml:"version"`
	HypervisorTypes []string `json:"hypervisorTypes" yaml:"hypervisorTypes"`
}

// Response is the raw outcome of a call: HTTP status and JSON body.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Success reports whether the status is 2xx.
func (r *Response) Success() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// VMCreateSpec is the Prism v2 VmConfigDTO accepted by POST vms.
type VMCreateSpec struct {
	Name            string       `json:"name"`
	NumVCPUs        int          `json:"num_vcpus"`
	NumCoresPerVCPU int          `json:"num_cores_per_vcpu"`
	MemoryMB        int          `json:"memory_mb"`
	VMDisks         []VMDiskSpec `json:"vm_disks"`
	VMNics          []VMNicSpec  `json:"vm_nics"`
}

// VMDiskSpec is the Prism v2 VMDiskDTO.
type VMDiskSpec struct {
	DiskAddress       VMDiskAddress `json:"disk_address"`
	IsCdrom           bool          `json:"is_cdrom"`
	IsEmpty           bool          `json:"is_empty"`
	IsSCSIPassThrough bool          `json:"is_scsi_pass_through"`
	VMDiskCreate      *VMDiskCreate `json:"vm_disk_create,omitempty"`
}

// VMDiskAddress selects the device bus of a disk.
type VMDiskAddress struct {
	DeviceBus string `json:"device_bus"`
}

// VMDiskCreate places a new disk on a storage container. Size is in bytes.
type VMDiskCreate struct {
	StorageContainerUUID string `json:"storage_container_uuid"`
	Size                 int64  `json:"size"`
}

// VMNicSpec is the Prism v2 VMNicSpecDTO.
type VMNicSpec struct {
	NetworkUUID        string `json:"network_uuid"`
	RequestIP          bool   `json:"request_ip"`
	RequestedIPAddress string `json:"requested_ip_address,omitempty"`
}

// Wire forms of list and cluster responses.

type entityList[T any] struct {
	Entities []T `json:"entities"`
}

type containerEntity struct {
	Name                 string `json:"name"`
	StorageContainerUUID string `json:"storage_container_uuid"`
	MaxCapacity          int64  `json:"max_capacity"`
}

type networkEntity struct {
	Name     string `json:"name"`
	UUID     string `json:"uuid"`
	VLANID   int    `json:"vlan_id"`
	IPConfig *struct {
		NetworkAddress string `json:"network_address"`
	} `json:"ip_config"`
}

type clusterEntity struct {
	Name                     string   `json:"name"`
	ID                       string   `json:"id"`
	ClusterExternalIPAddress string   `json:"cluster_external_ipaddress"`
	NumNodes                 int      `json:"num_nodes"`
	Version                  string   `json:"version"`
	HypervisorTypes          []string `json:"hypervisor_types"`
}

func (e containerEntity) toContainer() Container {
	return Container{
		Name:               e.Name,
		StorageContainerID: e.StorageContainerUUID,
		MaxCapacity:        e.MaxCapacity,
	}
}

func (e networkEntity) toNetwork() Network {
	n := Network{
		Name:      e.Name,
		NetworkID: e.UUID,
		VLANID:    e.VLANID,
	}
	if e.IPConfig != nil {
		n.NetworkAddress = e.IPConfig.NetworkAddress
	}
	return n
}

func (e clusterEntity) toCluster() *Cluster {
	return &Cluster{
		Name:            e.Name,
		ID:              e.ID,
		ExternalIP:      e.ClusterExternalIPAddress,
		NumNodes:        e.NumNodes,
		Version:         e.Version,
		HypervisorTypes: e.HypervisorTypes,
	}
}
