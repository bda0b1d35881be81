package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/imamik/prismctl/internal/archive"
	"github.com/imamik/prismctl/internal/config"
	"github.com/imamik/prismctl/internal/inventory"
	"github.com/imamik/prismctl/internal/logging"
	"github.com/imamik/prismctl/internal/metrics"
	"github.com/imamik/prismctl/internal/prism"
	"github.com/imamik/prismctl/internal/prompt"
)

// Options carries the root command's persistent settings into a handler.
type Options struct {
	// ConfigPath is the --config value; empty means the optional default file.
	ConfigPath string
	// Flags are bound over file and environment values.
	Flags *pflag.FlagSet
}

// ClusterAPI is the part of the Prism client the handlers use.
type ClusterAPI interface {
	ListContainers(ctx context.Context) ([]prism.Container, error)
	ListNetworks(ctx context.Context) ([]prism.Network, error)
	GetCluster(ctx context.Context) (*prism.Cluster, error)
	CreateVM(ctx context.Context, spec prism.VMCreateSpec) (*prism.Response, error)
}

// Factory function variables for sessions - can be replaced in tests.
var (
	// loadConfig resolves file, environment and flag settings.
	loadConfig = config.Load

	// newConsole opens the interaction channel on the process terminal.
	newConsole = func() prompt.Console {
		return prompt.New(os.Stdin, os.Stdout)
	}

	// newStatusConsole opens an interaction channel whose prompts go to
	// stderr, leaving stdout to formatted output.
	newStatusConsole = func() prompt.Console {
		return prompt.New(os.Stdin, os.Stderr)
	}

	// logOutput receives structured logs.
	logOutput io.Writer = os.Stderr

	// newS3Sink creates the S3 payload archive.
	newS3Sink = func(ctx context.Context, opts archive.S3Options) (archive.Sink, error) {
		sink, err := archive.NewS3Sink(ctx, opts)
		if err != nil {
			return nil, err
		}
		return sink, nil
	}

	// newClusterAPI creates the Prism client for a session.
	newClusterAPI = func(cfg *config.Config, transport http.RoundTripper, sink archive.Sink, log logr.Logger) ClusterAPI {
		return prism.NewClient(cfg.Cluster.BaseURL(), cfg.Cluster.Username, cfg.Cluster.Password,
			prism.WithHTTPClient(&http.Client{Transport: transport}),
			prism.WithTimeouts(cfg.Timeouts.Request, cfg.Timeouts.Submit),
			prism.WithPayloadSink(sink),
			prism.WithLogger(log.WithName("prism")),
		)
	}
)

// session is everything one console run shares: configuration, the
// interaction channel, the API client and its inventory cache.
type session struct {
	id        string
	cfg       *config.Config
	console   prompt.Console
	log       logr.Logger
	api       ClusterAPI
	inventory *inventory.Accessor
	metrics   *metrics.Metrics
	sink      archive.Sink
}

// openSession loads configuration, asks for missing credentials and wires
// the client stack.
func openSession(ctx context.Context, opts Options, console prompt.Console) (*session, error) {
	cfg, err := loadConfig(opts.ConfigPath, opts.Flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	verbosity, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	log := logging.New(logOutput, verbosity, logging.Format(cfg.Log.Format)).WithValues("session", id)

	if err := ensureCredentials(ctx, console, &cfg.Cluster); err != nil {
		return nil, err
	}

	sink, err := buildSink(ctx, &cfg.Dump, id)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	transport := m.InstrumentRoundTripper(prism.NewTransport(cfg.Cluster.Insecure))
	api := newClusterAPI(cfg, transport, sink, log)

	log.V(1).Info("Session opened", "cluster", cfg.Cluster.Address, "user", cfg.Cluster.Username)

	return &session{
		id:        id,
		cfg:       cfg,
		console:   console,
		log:       log,
		api:       api,
		inventory: inventory.New(api, log),
		metrics:   m,
		sink:      sink,
	}, nil
}

// close flushes session metrics when a textfile is configured.
func (s *session) close() {
	if s.cfg.Metrics.Textfile == "" {
		return
	}
	if err := s.metrics.WriteTextfile(s.cfg.Metrics.Textfile); err != nil {
		s.log.Error(err, "Failed to write metrics textfile")
	}
}

// ensureCredentials asks for every cluster setting left empty by the
// configuration and echoes the result with the password masked.
func ensureCredentials(ctx context.Context, c prompt.Console, cluster *config.ClusterConfig) error {
	asked := false
	questions := []struct {
		value  *string
		prompt string
		secret bool
	}{
		{&cluster.Address, "Please enter the Cluster Virtual IP Address\n", false},
		{&cluster.Username, "Please enter username for the cluster\n", false},
		{&cluster.Password, "Please enter password for the username\n", true},
	}

	for _, q := range questions {
		if *q.value != "" {
			continue
		}
		asked = true

		var answer string
		var err error
		if q.secret {
			answer, err = prompt.AskSecret(ctx, c, q.prompt)
		} else {
			answer, err = c.Ask(ctx, q.prompt)
		}
		if err != nil {
			return err
		}
		*q.value = strings.TrimSpace(answer)
	}

	if cluster.Address == "" {
		return fmt.Errorf("cluster address is required")
	}
	if asked {
		prompt.Println(c, divider)
		prompt.Println(c, "Cluster IP Address: "+cluster.Address)
		prompt.Println(c, "Cluster username/password: "+cluster.Username+"/"+strings.Repeat("*", len(cluster.Password))+"\n")
	}
	return nil
}

// buildSink returns the configured payload archive, or nil when dumps are off.
// S3 objects are grouped under the session id.
func buildSink(ctx context.Context, dump *config.DumpConfig, sessionID string) (archive.Sink, error) {
	var sinks archive.Tee
	if dump.Dir != "" {
		sinks = append(sinks, archive.NewDirSink(dump.Dir))
	}
	if dump.S3.Bucket != "" {
		s3, err := newS3Sink(ctx, archive.S3Options{
			Bucket:    dump.S3.Bucket,
			Endpoint:  dump.S3.Endpoint,
			Region:    dump.S3.Region,
			AccessKey: dump.S3.AccessKey,
			SecretKey: dump.S3.SecretKey,
			Prefix:    path.Join(dump.S3.Prefix, sessionID),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 payload archive: %w", err)
		}
		sinks = append(sinks, s3)
	}

	switch len(sinks) {
	case 0:
		return nil, nil
	case 1:
		return sinks[0], nil
	default:
		return sinks, nil
	}
}
