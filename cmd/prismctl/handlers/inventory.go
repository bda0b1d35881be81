package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/prismctl/internal/output"
)

// ShowCluster prints the cluster summary in the requested format.
func ShowCluster(ctx context.Context, opts Options, out output.Options) error {
	return withFormatter(ctx, opts, out, func(s *session, f output.Formatter) (string, error) {
		cluster, err := s.api.GetCluster(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get cluster: %w", err)
		}
		return f.FormatCluster(cluster)
	})
}

// ListContainers prints the cluster's storage containers in the requested format.
func ListContainers(ctx context.Context, opts Options, out output.Options) error {
	return withFormatter(ctx, opts, out, func(s *session, f output.Formatter) (string, error) {
		containers, err := s.inventory.Containers(ctx)
		if err != nil {
			return "", err
		}
		return f.FormatContainers(containers)
	})
}

// ListNetworks prints the cluster's networks in the requested format.
func ListNetworks(ctx context.Context, opts Options, out output.Options) error {
	return withFormatter(ctx, opts, out, func(s *session, f output.Formatter) (string, error) {
		networks, err := s.inventory.Networks(ctx)
		if err != nil {
			return "", err
		}
		return f.FormatNetworks(networks)
	})
}

func withFormatter(ctx context.Context, opts Options, out output.Options, render func(*session, output.Formatter) (string, error)) error {
	if err := output.ValidateFormat(string(out.Format)); err != nil {
		return err
	}
	formatter, err := output.NewFormatter(out)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, opts, newStatusConsole())
	if err != nil {
		return err
	}
	defer s.close()

	text, err := render(s, formatter)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}
