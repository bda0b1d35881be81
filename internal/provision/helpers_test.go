package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/imamik/prismctl/internal/inventory"
	"github.com/imamik/prismctl/internal/prism"
	"github.com/imamik/prismctl/internal/prompt"
)

// scriptedConsole answers questions from a fixed script and records every
// prompt it was asked. It reports ErrInputClosed once the script runs out.
type scriptedConsole struct {
	answers []string
	prompts []string
	out     bytes.Buffer
}

func newScriptedConsole(answers ...string) *scriptedConsole {
	return &scriptedConsole{answers: answers}
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

func (c *scriptedConsole) asked(question string) int {
	n := 0
	for _, p := range c.prompts {
		if p == question {
			n++
		}
	}
	return n
}

func (c *scriptedConsole) output() string {
	return c.out.String()
}

type fakeInventory struct {
	containers []prism.Container
	networks   []prism.Network
	err        error
}

func (f *fakeInventory) Containers(context.Context) ([]prism.Container, error) {
	return f.containers, f.err
}

func (f *fakeInventory) Networks(context.Context) ([]prism.Network, error) {
	return f.networks, f.err
}

func (f *fakeInventory) ContainerByName(ctx context.Context, name string) (prism.Container, bool, error) {
	containers, err := f.Containers(ctx)
	if err != nil {
		return prism.Container{}, false, err
	}
	c, ok := inventory.ContainersByName(containers)[name]
	return c, ok, nil
}

func (f *fakeInventory) NetworkByName(ctx context.Context, name string) (prism.Network, bool, error) {
	networks, err := f.Networks(ctx)
	if err != nil {
		return prism.Network{}, false, err
	}
	n, ok := inventory.NetworksByName(networks)[name]
	return n, ok, nil
}

func testInventory() *fakeInventory {
	return &fakeInventory{
		containers: []prism.Container{
			{Name: "default-container", StorageContainerID: "c-uuid-1"},
			{Name: "fast-ssd", StorageContainerID: "c-uuid-2"},
		},
		networks: []prism.Network{
			{Name: "vlan10", NetworkID: "n-uuid-1", NetworkAddress: "10.0.10.0"},
			{Name: "isolated", NetworkID: "n-uuid-2"},
		},
	}
}

type fakeSubmitter struct {
	calls  int
	spec   prism.VMCreateSpec
	status int
	body   string
	err    error
}

func (f *fakeSubmitter) CreateVM(_ context.Context, spec prism.VMCreateSpec) (*prism.Response, error) {
	f.calls++
	f.spec = spec
	if f.err != nil {
		return nil, f.err
	}
	status := f.status
	if status == 0 {
		status = 201
	}
	body := f.body
	if body == "" {
		body = `{"task_uuid":"t-1"}`
	}
	return &prism.Response{StatusCode: status, Body: json.RawMessage(body)}, nil
}

// shapeAnswers returns a confirmed shape script.
func shapeAnswers(name, vcpus, cores, memory string) []string {
	return []string{name, vcpus, cores, memory, "Y"}
}

func script(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func containsLine(out, line string) bool {
	for _, l := range strings.Split(out, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
