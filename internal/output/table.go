package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/imamik/prismctl/internal/prism"
)

// TableFormatter formats resources as human-readable tables.
type TableFormatter struct {
	NoHeaders bool
}

// FormatCluster renders the cluster as a key/value table.
func (f *TableFormatter) FormatCluster(c *prism.Cluster) (string, error) {
	if c == nil {
		return "No cluster information\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Name", c.Name},
		{"UUID", c.ID},
		{"External IP", dash(c.ExternalIP)},
		{"Nodes", fmt.Sprintf("%d", c.NumNodes)},
		{"Version", dash(c.Version)},
		{"Hypervisors", dash(strings.Join(c.HypervisorTypes, ","))},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s:\t%s\n", r[0], r[1])
	}
	_ = w.Flush()
	return buf.String(), nil
}

// FormatContainers renders one row per storage container.
func (f *TableFormatter) FormatContainers(containers []prism.Container) (string, error) {
	if len(containers) == 0 {
		return "No storage containers found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tUUID\tCAPACITY")
	}
	for _, c := range containers {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.StorageContainerID, formatBytes(c.MaxCapacity))
	}
	_ = w.Flush()
	return buf.String(), nil
}

// FormatNetworks renders one row per network.
func (f *TableFormatter) FormatNetworks(networks []prism.Network) (string, error) {
	if len(networks) == 0 {
		return "No networks found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tUUID\tVLAN\tADDRESS")
	}
	for _, n := range networks {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", n.Name, n.NetworkID, n.VLANID, dash(n.NetworkAddress))
	}
	_ = w.Flush()
	return buf.String(), nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatBytes renders a byte count with a binary unit, e.g. "1.5 TiB".
func formatBytes(n int64) string {
	if n <= 0 {
		return "-"
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 5; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
