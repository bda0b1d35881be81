package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/imamik/prismctl/internal/archive"
	"github.com/imamik/prismctl/internal/config"
	"github.com/imamik/prismctl/internal/prism"
	"github.com/imamik/prismctl/internal/prompt"
)

// captureOutput captures stdout during function execution.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

type scriptedConsole struct {
	answers []string
	prompts []string
	out     bytes.Buffer
}

func (c *scriptedConsole) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func (c *scriptedConsole) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.prompts = append(c.prompts, question)
	if len(c.answers) == 0 {
		return "", prompt.ErrInputClosed
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

type fakeAPI struct {
	containers []prism.Container
	networks   []prism.Network
	cluster    *prism.Cluster
	listErr    error
	clusterErr error
	status     int
	created    []prism.VMCreateSpec
}

func (f *fakeAPI) ListContainers(context.Context) ([]prism.Container, error) {
	return f.containers, f.listErr
}

func (f *fakeAPI) ListNetworks(context.Context) ([]prism.Network, error) {
	return f.networks, f.listErr
}

func (f *fakeAPI) GetCluster(context.Context) (*prism.Cluster, error) {
	return f.cluster, f.clusterErr
}

func (f *fakeAPI) CreateVM(_ context.Context, spec prism.VMCreateSpec) (*prism.Response, error) {
	f.created = append(f.created, spec)
	status := f.status
	if status == 0 {
		status = http.StatusCreated
	}
	return &prism.Response{StatusCode: status, Body: json.RawMessage(`{"task_uuid":"t-1"}`)}, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		containers: []prism.Container{{Name: "default-container", StorageContainerID: "c-1", MaxCapacity: 1 << 40}},
		networks:   []prism.Network{{Name: "vlan10", NetworkID: "n-1", VLANID: 10, NetworkAddress: "10.0.10.0"}},
		cluster:    &prism.Cluster{Name: "ntnx-lab", ID: "0005-abcd", NumNodes: 3, Version: "6.5.2"},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Cluster: config.ClusterConfig{
			Address:  "10.0.0.1",
			Port:     9440,
			Username: "admin",
			Password: "secret",
			Insecure: true,
		},
		Timeouts: config.DefaultTimeouts(),
		Log:      config.LogConfig{Level: "info", Format: "text"},
	}
}

// stubSession swaps the session factories for the duration of the test.
func stubSession(t *testing.T, cfg *config.Config, api ClusterAPI, console prompt.Console) {
	t.Helper()

	origLoad, origConsole, origStatus, origAPI, origLog := loadConfig, newConsole, newStatusConsole, newClusterAPI, logOutput
	t.Cleanup(func() {
		loadConfig, newConsole, newStatusConsole, newClusterAPI, logOutput = origLoad, origConsole, origStatus, origAPI, origLog
	})

	loadConfig = func(string, *pflag.FlagSet) (*config.Config, error) {
		return cfg, nil
	}
	newConsole = func() prompt.Console {
		return console
	}
	newStatusConsole = newConsole
	if api != nil {
		newClusterAPI = func(*config.Config, http.RoundTripper, archive.Sink, logr.Logger) ClusterAPI {
			return api
		}
	}
	logOutput = io.Discard
}
