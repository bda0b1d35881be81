package output

import (
	"encoding/json"
	"fmt"

	"github.com/imamik/prismctl/internal/prism"
)

// JSONFormatter formats resources as indented JSON.
type JSONFormatter struct{}

// FormatCluster formats the cluster as a JSON object.
func (f *JSONFormatter) FormatCluster(c *prism.Cluster) (string, error) {
	return marshalJSON("cluster", c)
}

// FormatContainers formats containers as a JSON array.
func (f *JSONFormatter) FormatContainers(containers []prism.Container) (string, error) {
	if containers == nil {
		containers = []prism.Container{}
	}
	return marshalJSON("containers", containers)
}

// FormatNetworks formats networks as a JSON array.
func (f *JSONFormatter) FormatNetworks(networks []prism.Network) (string, error) {
	if networks == nil {
		networks = []prism.Network{}
	}
	return marshalJSON("networks", networks)
}

func marshalJSON(kind string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to JSON: %w", kind, err)
	}
	return string(data) + "\n", nil
}
