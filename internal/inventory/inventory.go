// Package inventory caches the cluster's storage containers and networks for
// one console session.
//
// The cache is filled lazily on first use and whenever it is empty, and is
// otherwise reused until the caller forces a refresh. There is no expiry.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/prismctl/internal/prism"
)

// Returned when the cluster reports no entities of the requested kind.
var (
	ErrNoContainers = errors.New("no storage containers available on the cluster")
	ErrNoNetworks   = errors.New("no networks available on the cluster")
)

// Source is the part of the Prism client the accessor reads through.
type Source interface {
	ListContainers(ctx context.Context) ([]prism.Container, error)
	ListNetworks(ctx context.Context) ([]prism.Network, error)
}

// Accessor holds the session's inventory snapshot. It is not safe for
// concurrent use; a console session is single-threaded.
type Accessor struct {
	source     Source
	log        logr.Logger
	containers []prism.Container
	networks   []prism.Network
}

// New creates an empty accessor over source.
func New(source Source, log logr.Logger) *Accessor {
	return &Accessor{source: source, log: log.WithName("inventory")}
}

// Containers returns the cached containers, refreshing first if the cache is empty.
// A zero-length result is not an error.
func (a *Accessor) Containers(ctx context.Context) ([]prism.Container, error) {
	if len(a.containers) == 0 {
		if err := a.RefreshContainers(ctx); err != nil {
			return nil, err
		}
	}
	return a.containers, nil
}

// Networks returns the cached networks, refreshing first if the cache is empty.
// A zero-length result is not an error.
func (a *Accessor) Networks(ctx context.Context) ([]prism.Network, error) {
	if len(a.networks) == 0 {
		if err := a.RefreshNetworks(ctx); err != nil {
			return nil, err
		}
	}
	return a.networks, nil
}

// RefreshContainers reloads containers from the cluster.
func (a *Accessor) RefreshContainers(ctx context.Context) error {
	containers, err := a.source.ListContainers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list storage containers: %w", err)
	}
	a.containers = containers
	a.log.V(1).Info("Refreshed storage containers", "count", len(containers))
	a.warnDuplicates("storage container", containerNames(containers))
	return nil
}

// RefreshNetworks reloads networks from the cluster.
func (a *Accessor) RefreshNetworks(ctx context.Context) error {
	networks, err := a.source.ListNetworks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list networks: %w", err)
	}
	a.networks = networks
	a.log.V(1).Info("Refreshed networks", "count", len(networks))
	a.warnDuplicates("network", networkNames(networks))
	return nil
}

// ContainerByName looks up a container by display name in the cached snapshot.
func (a *Accessor) ContainerByName(ctx context.Context, name string) (prism.Container, bool, error) {
	containers, err := a.Containers(ctx)
	if err != nil {
		return prism.Container{}, false, err
	}
	c, ok := ContainersByName(containers)[name]
	return c, ok, nil
}

// NetworkByName looks up a network by display name in the cached snapshot.
func (a *Accessor) NetworkByName(ctx context.Context, name string) (prism.Network, bool, error) {
	networks, err := a.Networks(ctx)
	if err != nil {
		return prism.Network{}, false, err
	}
	n, ok := NetworksByName(networks)[name]
	return n, ok, nil
}

// ContainersByName indexes containers by display name. When names collide the
// later container shadows the earlier one.
func ContainersByName(containers []prism.Container) map[string]prism.Container {
	byName := make(map[string]prism.Container, len(containers))
	for _, c := range containers {
		byName[c.Name] = c
	}
	return byName
}

// NetworksByName indexes networks by display name. When names collide the
// later network shadows the earlier one.
func NetworksByName(networks []prism.Network) map[string]prism.Network {
	byName := make(map[string]prism.Network, len(networks))
	for _, n := range networks {
		byName[n.Name] = n
	}
	return byName
}

// UniqueNames returns names in first-seen order with duplicates removed.
func UniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique
}

func containerNames(containers []prism.Container) []string {
	names := make([]string, len(containers))
	for i, c := range containers {
		names[i] = c.Name
	}
	return names
}

func networkNames(networks []prism.Network) []string {
	names := make([]string, len(networks))
	for i, n := range networks {
		names[i] = n.Name
	}
	return names
}

// ContainerNames lists container display names in first-seen order.
func ContainerNames(containers []prism.Container) []string {
	return UniqueNames(containerNames(containers))
}

// NetworkNames lists network display names in first-seen order.
func NetworkNames(networks []prism.Network) []string {
	return UniqueNames(networkNames(networks))
}

func (a *Accessor) warnDuplicates(kind string, names []string) {
	if dups := duplicates(names); len(dups) > 0 {
		a.log.Info("Duplicate names in inventory, later entries win", "kind", kind, "names", dups)
	}
}

func duplicates(names []string) []string {
	count := make(map[string]int, len(names))
	var dups []string
	for _, name := range names {
		count[name]++
		if count[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}
