package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/imamik/prismctl/internal/prism"
)

// YAMLFormatter formats resources as YAML.
type YAMLFormatter struct{}

// FormatCluster formats the cluster as a YAML document.
func (f *YAMLFormatter) FormatCluster(c *prism.Cluster) (string, error) {
	return marshalYAML("cluster", c)
}

// FormatContainers formats containers as a YAML sequence.
func (f *YAMLFormatter) FormatContainers(containers []prism.Container) (string, error) {
	if containers == nil {
		containers = []prism.Container{}
	}
	return marshalYAML("containers", containers)
}

// FormatNetworks formats networks as a YAML sequence.
func (f *YAMLFormatter) FormatNetworks(networks []prism.Network) (string, error) {
	if networks == nil {
		networks = []prism.Network{}
	}
	return marshalYAML("networks", networks)
}

func marshalYAML(kind string, v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to YAML: %w", kind, err)
	}
	return string(data), nil
}
