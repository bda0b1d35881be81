package handlers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/prismctl/internal/archive"
	"github.com/imamik/prismctl/internal/config"
)

func TestEnsureCredentials_AsksForMissingValues(t *testing.T) {
	console := &scriptedConsole{answers: []string{"10.1.1.1", "admin", "hunter2"}}
	cluster := config.ClusterConfig{Port: 9440}

	require.NoError(t, ensureCredentials(context.Background(), console, &cluster))

	assert.Equal(t, "10.1.1.1", cluster.Address)
	assert.Equal(t, "admin", cluster.Username)
	assert.Equal(t, "hunter2", cluster.Password)
	assert.Len(t, console.prompts, 3)

	out := console.out.String()
	assert.Contains(t, out, "Cluster IP Address: 10.1.1.1")
	assert.Contains(t, out, "Cluster username/password: admin/*******")
	assert.NotContains(t, out, "hunter2")
}

func TestEnsureCredentials_OnlyMissingAreAsked(t *testing.T) {
	console := &scriptedConsole{answers: []string{"pw"}}
	cluster := config.ClusterConfig{Address: "10.1.1.1", Username: "admin"}

	require.NoError(t, ensureCredentials(context.Background(), console, &cluster))
	assert.Equal(t, []string{"Please enter password for the username\n"}, console.prompts)
	assert.Equal(t, "pw", cluster.Password)
}

func TestEnsureCredentials_ConfiguredIsSilent(t *testing.T) {
	console := &scriptedConsole{}
	cluster := testConfig().Cluster

	require.NoError(t, ensureCredentials(context.Background(), console, &cluster))
	assert.Empty(t, console.prompts)
	assert.Empty(t, console.out.String())
}

func TestEnsureCredentials_Errors(t *testing.T) {
	t.Run("empty address", func(t *testing.T) {
		console := &scriptedConsole{answers: []string{"  ", "admin", "pw"}}
		err := ensureCredentials(context.Background(), console, &config.ClusterConfig{})
		assert.EqualError(t, err, "cluster address is required")
	})

	t.Run("input closed", func(t *testing.T) {
		err := ensureCredentials(context.Background(), &scriptedConsole{}, &config.ClusterConfig{})
		assert.Error(t, err)
	})
}

func TestBuildSink(t *testing.T) {
	origS3 := newS3Sink
	defer func() { newS3Sink = origS3 }()

	var gotOpts archive.S3Options
	newS3Sink = func(_ context.Context, opts archive.S3Options) (archive.Sink, error) {
		gotOpts = opts
		return archive.NewDirSink(t.TempDir()), nil
	}

	ctx := context.Background()

	sink, err := buildSink(ctx, &config.DumpConfig{}, "sess")
	require.NoError(t, err)
	assert.Nil(t, sink)

	sink, err = buildSink(ctx, &config.DumpConfig{Dir: t.TempDir()}, "sess")
	require.NoError(t, err)
	assert.IsType(t, &archive.DirSink{}, sink)

	sink, err = buildSink(ctx, &config.DumpConfig{
		Dir: t.TempDir(),
		S3:  config.S3Config{Bucket: "dumps", Region: "eu-central-1", Prefix: "prismctl/"},
	}, "sess")
	require.NoError(t, err)
	require.IsType(t, archive.Tee{}, sink)
	assert.Len(t, sink.(archive.Tee), 2)
	assert.Equal(t, "dumps", gotOpts.Bucket)
	assert.Equal(t, "prismctl/sess", gotOpts.Prefix)

	newS3Sink = func(context.Context, archive.S3Options) (archive.Sink, error) {
		return nil, errors.New("no credentials")
	}
	_, err = buildSink(ctx, &config.DumpConfig{S3: config.S3Config{Bucket: "dumps"}}, "sess")
	assert.ErrorContains(t, err, "no credentials")
}

// TestOpenSession_RealClient drives the default client stack against a TLS
// test server with a self-signed certificate.
func TestOpenSession_RealClient(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/PrismGateway/services/rest/v2.0/storage_containers":
			_, _ = w.Write([]byte(`{"entities":[{"name":"default-container","storage_container_uuid":"c-1"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	host, port, err := net.SplitHostPort(server.Listener.Addr().String())
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Cluster.Address = host
	cfg.Cluster.Port = portNum
	cfg.Dump.Dir = t.TempDir()
	stubSession(t, cfg, nil, &scriptedConsole{})

	s, err := openSession(context.Background(), Options{}, &scriptedConsole{})
	require.NoError(t, err)
	assert.NotEmpty(t, s.id)

	containers, err := s.inventory.Containers(context.Background())
	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Equal(t, "c-1", containers[0].StorageContainerID)

	count, err := testutil.GatherAndCount(s.metrics.Registry(), "prismctl_api_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = os.Stat(filepath.Join(cfg.Dump.Dir, "storage_containers.json"))
	assert.NoError(t, err)
}
