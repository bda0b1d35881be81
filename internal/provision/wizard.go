package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/imamik/prismctl/internal/prism"
	"github.com/imamik/prismctl/internal/prompt"
)

// State is a step of the wizard state machine.
type State int

// Wizard states. Done and Fatal are terminal.
const (
	StateCollectingShape State = iota
	StateConfirmingShape
	StateBuildingDisks
	StateBuildingNICs
	StateSubmitting
	StateDone
	StateFatal
)

var stateNames = map[State]string{
	StateCollectingShape: "collecting-shape",
	StateConfirmingShape: "confirming-shape",
	StateBuildingDisks:   "building-disks",
	StateBuildingNICs:    "building-nics",
	StateSubmitting:      "submitting",
	StateDone:            "done",
	StateFatal:           "fatal",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Submitter sends the assembled request to the cluster.
type Submitter interface {
	CreateVM(ctx context.Context, spec prism.VMCreateSpec) (*prism.Response, error)
}

// Run outcomes passed to a Recorder.
const (
	OutcomeSubmitted = "submitted"
	OutcomeRejected  = "rejected"
	OutcomeAborted   = "aborted"
)

// Recorder observes finished wizard runs.
type Recorder interface {
	RecordRun(outcome string)
}

// Archive keeps a copy of the assembled request before it is submitted.
type Archive interface {
	Save(ctx context.Context, name string, data []byte) error
}

// requestArchiveName is the archive entry for the assembled request.
const requestArchiveName = "vm_provision_request"

// Result is what a wizard run produced. Request is set once assembled and
// Response once the cluster answered.
type Result struct {
	State    State
	Request  *Request
	Response *prism.Response
}

// Wizard composes and submits one VM creation request.
type Wizard struct {
	console   prompt.Console
	inventory Inventory
	submitter Submitter
	recorder  Recorder
	archive   Archive
	log       logr.Logger
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithLogger sets the wizard logger.
func WithLogger(log logr.Logger) Option {
	return func(w *Wizard) {
		w.log = log
	}
}

// WithRecorder reports each run's outcome to r.
func WithRecorder(r Recorder) Option {
	return func(w *Wizard) {
		w.recorder = r
	}
}

// WithArchive stores the assembled request in a before submission.
func WithArchive(a Archive) Option {
	return func(w *Wizard) {
		w.archive = a
	}
}

// NewWizard creates a wizard over the given collaborators.
func NewWizard(c prompt.Console, inv Inventory, submitter Submitter, opts ...Option) *Wizard {
	w := &Wizard{
		console:   c,
		inventory: inv,
		submitter: submitter,
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run walks the wizard once and submits at most one request.
//
// The returned Result is never nil. On a rejected submission the state is
// StateDone and the error is a *SubmitError. Every other error leaves the
// wizard in StateFatal.
func (w *Wizard) Run(ctx context.Context) (*Result, error) {
	result := &Result{State: StateCollectingShape}

	fail := func(err error) (*Result, error) {
		w.log.V(1).Info("Wizard aborted", "state", result.State.String(), "error", err.Error())
		result.State = StateFatal
		w.record(OutcomeAborted)
		return result, err
	}

	shape, err := w.collectShape(ctx, result)
	if err != nil {
		return fail(err)
	}

	result.State = StateBuildingDisks
	disks, err := w.collectDisks(ctx)
	if err != nil {
		return fail(fmt.Errorf("disk: %w", err))
	}

	result.State = StateBuildingNICs
	nics, err := w.collectNICs(ctx)
	if err != nil {
		return fail(fmt.Errorf("nic: %w", err))
	}

	result.Request = &Request{Shape: shape, Disks: disks, NICs: nics}
	if err := result.Request.Validate(); err != nil {
		return fail(fmt.Errorf("request: %w", err))
	}
	result.State = StateSubmitting
	w.archiveRequest(ctx, result.Request)

	w.log.Info("Submitting VM creation request",
		"name", shape.Name,
		"disks", len(disks),
		"nics", len(nics),
	)
	resp, err := w.submitter.CreateVM(ctx, result.Request.CreateSpec())
	if err != nil {
		return fail(fmt.Errorf("submit: %w", err))
	}
	result.Response = resp
	result.State = StateDone

	w.report(resp)
	if !resp.Success() {
		w.record(OutcomeRejected)
		return result, &SubmitError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(resp.Body))}
	}
	w.record(OutcomeSubmitted)
	return result, nil
}

func (w *Wizard) record(outcome string) {
	if w.recorder != nil {
		w.recorder.RecordRun(outcome)
	}
}

// archiveRequest saves the request in its own JSON form. Failures are logged
// and never block submission.
func (w *Wizard) archiveRequest(ctx context.Context, req *Request) {
	if w.archive == nil {
		return
	}
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		w.log.Error(err, "Failed to encode request for archive")
		return
	}
	if err := w.archive.Save(ctx, requestArchiveName, data); err != nil {
		w.log.Error(err, "Failed to archive request", "name", requestArchiveName)
	}
}

// collectShape loops until the operator confirms all four shape fields.
func (w *Wizard) collectShape(ctx context.Context, result *Result) (VMShape, error) {
	for {
		result.State = StateCollectingShape

		var shape VMShape
		var err error
		if shape.Name, err = w.console.Ask(ctx, "Please enter a VM Name:"); err != nil {
			return VMShape{}, err
		}
		if shape.VCPUs, err = w.askInt(ctx, "vCPUs", "Please enter number of vCPUs for "+shape.Name+":"); err != nil {
			return VMShape{}, err
		}
		if shape.CoresPerVCPU, err = w.askInt(ctx, "cores per vCPU", "Please enter number of cores per vCPU:"); err != nil {
			return VMShape{}, err
		}
		if shape.MemoryMB, err = w.askInt(ctx, "memory", "Please enter memory(mb) for "+shape.Name+":"); err != nil {
			return VMShape{}, err
		}

		result.State = StateConfirmingShape
		prompt.Println(w.console, "VM Name:"+shape.Name)
		prompt.Println(w.console, "Number of vCPUs:"+strconv.Itoa(shape.VCPUs))
		prompt.Println(w.console, "Number of cores per vCPU:"+strconv.Itoa(shape.CoresPerVCPU))
		prompt.Println(w.console, "Memory Size(MB):"+strconv.Itoa(shape.MemoryMB))

		answer, err := w.console.Ask(ctx, "Is it OK? [Y/N]:")
		if err != nil {
			return VMShape{}, err
		}
		if !confirmed(answer) {
			continue
		}
		if err := shape.Validate(); err != nil {
			prompt.Println(w.console, err.Error())
			continue
		}
		return shape, nil
	}
}

// askInt parses the answer as a positive integer; failure is fatal to the run.
func (w *Wizard) askInt(ctx context.Context, field, question string) (int, error) {
	answer, err := w.console.Ask(ctx, question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidNumber, field, answer)
	}
	return n, nil
}

// collectDisks builds at least one disk and continues while the answer is "Y".
func (w *Wizard) collectDisks(ctx context.Context) ([]DiskSpec, error) {
	var disks []DiskSpec
	for {
		prompt.Println(w.console, "Please add disks to the VM")
		disk, err := BuildDisk(ctx, w.console, w.inventory)
		if err != nil {
			return nil, err
		}
		w.log.V(1).Info("Disk added", "bus", string(disk.BusType), "placement", disk.Placement != nil)
		disks = append(disks, disk)

		answer, err := w.console.Ask(ctx, "Do you add more disks? [Y/N]:")
		if err != nil {
			return nil, err
		}
		if !confirmed(answer) {
			return disks, nil
		}
	}
}

// collectNICs builds NICs only after an initial "Y", then continues while the
// answer is "Y". The result is never nil so it serializes as an empty list.
func (w *Wizard) collectNICs(ctx context.Context) ([]NicSpec, error) {
	nics := []NicSpec{}

	answer, err := w.console.Ask(ctx, "Do you add NICs to the VM? [Y/N]:")
	if err != nil {
		return nil, err
	}
	if !confirmed(answer) {
		return nics, nil
	}

	for {
		prompt.Println(w.console, "Please add NICs to the VM")
		nic, err := BuildNIC(ctx, w.console, w.inventory)
		if err != nil {
			return nil, err
		}
		w.log.V(1).Info("NIC added", "network", nic.NetworkID, "staticIP", nic.RequestsStaticIP)
		nics = append(nics, nic)

		answer, err := w.console.Ask(ctx, "Do you add more NICs? [Y/N]:")
		if err != nil {
			return nil, err
		}
		if !confirmed(answer) {
			return nics, nil
		}
	}
}

// report prints the status code and the body, indented when it is JSON.
func (w *Wizard) report(resp *prism.Response) {
	prompt.Printf(w.console, "Response code: %d\n", resp.StatusCode)

	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Body, "", "  "); err != nil {
		prompt.Println(w.console, strings.TrimSpace(string(resp.Body)))
		return
	}
	prompt.Println(w.console, buf.String())
}
