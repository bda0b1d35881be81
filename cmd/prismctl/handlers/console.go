package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/prismctl/internal/inventory"
	"github.com/imamik/prismctl/internal/output"
	"github.com/imamik/prismctl/internal/prism"
	"github.com/imamik/prismctl/internal/prompt"
	"github.com/imamik/prismctl/internal/provision"
	"github.com/imamik/prismctl/internal/ui/style"
)

var divider = strings.Repeat("#", 79)

// MenuChoice is a parsed menu selection.
type MenuChoice int

// Menu choices across the main, container and network menus.
const (
	ChoiceUnknown MenuChoice = iota
	ChoiceShowCluster
	ChoiceContainerMenu
	ChoiceNetworkMenu
	ChoiceCreateVM
	ChoiceListContainers
	ChoiceListNetworks
	ChoiceBack
)

type menuItem struct {
	key    string
	label  string
	choice MenuChoice
}

type menu struct {
	title  string
	prompt string
	leave  string
	items  []menuItem
}

var (
	mainMenu = menu{
		title:  "Prism Cluster Main Menu",
		prompt: "Please enter cluster operation\n",
		leave:  "prismctl exit",
		items: []menuItem{
			{"1", "Show Cluster Information", ChoiceShowCluster},
			{"2", "Storage Container Operation", ChoiceContainerMenu},
			{"3", "Network Operation", ChoiceNetworkMenu},
			{"5", "Create a VM", ChoiceCreateVM},
			{"99", "Exit Menu", ChoiceBack},
		},
	}

	containerMenu = menu{
		title:  "Prism Cluster Container Menu",
		prompt: "Please enter container operation\n",
		leave:  "Return to Main Menu",
		items: []menuItem{
			{"21", "List Storage Container Information", ChoiceListContainers},
			{"99", "Return to Main Menu", ChoiceBack},
		},
	}

	networkMenu = menu{
		title:  "Prism Cluster Networks Menu",
		prompt: "Please enter network operation\n",
		leave:  "Return to Main Menu",
		items: []menuItem{
			{"31", "List Networks Information", ChoiceListNetworks},
			{"99", "Return to Main Menu", ChoiceBack},
		},
	}
)

// parse maps raw input to a choice of this menu. Input is matched exactly.
func (m menu) parse(input string) MenuChoice {
	for _, item := range m.items {
		if item.key == input {
			return item.choice
		}
	}
	return ChoiceUnknown
}

func (m menu) render() string {
	items := make([]style.MenuItem, len(m.items))
	for i, item := range m.items {
		items[i] = style.MenuItem{Key: item.key, Label: item.label}
	}
	return divider + "\n" + style.Menu(m.title, items) + divider
}

type action func(ctx context.Context) error

// Console runs the interactive menu until the operator exits or a fatal
// error ends the session.
func Console(ctx context.Context, opts Options) error {
	console := newConsole()
	prompt.Println(console, style.Title("Welcome to the Prism Cluster Handler Menu"))

	s, err := openSession(ctx, opts, console)
	if err != nil {
		return err
	}
	defer s.close()

	return s.runMenu(ctx, mainMenu, s.mainActions())
}

func (s *session) mainActions() map[MenuChoice]action {
	return map[MenuChoice]action{
		ChoiceShowCluster:   s.showCluster,
		ChoiceContainerMenu: s.runContainerMenu,
		ChoiceNetworkMenu:   s.runNetworkMenu,
		ChoiceCreateVM:      s.createVM,
	}
}

func (s *session) runContainerMenu(ctx context.Context) error {
	return s.runMenu(ctx, containerMenu, map[MenuChoice]action{
		ChoiceListContainers: s.listContainers,
	})
}

func (s *session) runNetworkMenu(ctx context.Context) error {
	return s.runMenu(ctx, networkMenu, map[MenuChoice]action{
		ChoiceListNetworks: s.listNetworks,
	})
}

// runMenu shows m until ChoiceBack. Action errors are reported and the menu
// resumes; fatal errors are returned.
func (s *session) runMenu(ctx context.Context, m menu, actions map[MenuChoice]action) error {
	for {
		prompt.Println(s.console, m.render())
		input, err := s.console.Ask(ctx, m.prompt)
		if err != nil {
			return err
		}

		choice := m.parse(input)
		if choice == ChoiceBack {
			prompt.Println(s.console, m.leave)
			return nil
		}

		act, ok := actions[choice]
		if !ok {
			prompt.Println(s.console, input)
			continue
		}

		if err := act(ctx); err != nil {
			if isFatal(err) {
				return err
			}
			s.report(err)
		}
	}
}

// isFatal reports errors that end the session rather than return to the menu.
func isFatal(err error) bool {
	return prism.IsTransport(err) ||
		errors.Is(err, prompt.ErrInputClosed) ||
		errors.Is(err, context.Canceled)
}

// report prints err. Input and inventory problems are warnings; anything
// the cluster rejected is a failure.
func (s *session) report(err error) {
	s.log.V(1).Info("Operation failed", "error", err.Error())
	if isInputProblem(err) {
		prompt.Println(s.console, style.Warning(err.Error()))
		return
	}
	prompt.Println(s.console, style.Failure(err.Error()))
	if prism.IsUnauthorized(err) {
		prompt.Println(s.console, style.Dim("Check the cluster username and password"))
	}
}

func isInputProblem(err error) bool {
	return errors.Is(err, provision.ErrInvalidNumber) ||
		errors.Is(err, inventory.ErrNoContainers) ||
		errors.Is(err, inventory.ErrNoNetworks)
}

func (s *session) showCluster(ctx context.Context) error {
	prompt.Println(s.console, style.Dim(fmt.Sprintf("Getting cluster information of the cluster %s", s.cfg.Cluster.Address)))
	cluster, err := s.api.GetCluster(ctx)
	if err != nil {
		return err
	}
	text, err := (&output.TableFormatter{}).FormatCluster(cluster)
	if err != nil {
		return err
	}
	prompt.Println(s.console, divider)
	_, _ = s.console.Write([]byte(text))
	return nil
}

func (s *session) listContainers(ctx context.Context) error {
	prompt.Println(s.console, style.Dim(fmt.Sprintf("Getting containers information of the cluster %s", s.cfg.Cluster.Address)))
	if err := s.inventory.RefreshContainers(ctx); err != nil {
		return err
	}
	containers, err := s.inventory.Containers(ctx)
	if err != nil {
		return err
	}
	text, err := (&output.TableFormatter{}).FormatContainers(containers)
	if err != nil {
		return err
	}
	prompt.Println(s.console, divider)
	_, _ = s.console.Write([]byte(text))
	return nil
}

func (s *session) listNetworks(ctx context.Context) error {
	prompt.Println(s.console, style.Dim(fmt.Sprintf("Getting networks information of the cluster %s", s.cfg.Cluster.Address)))
	if err := s.inventory.RefreshNetworks(ctx); err != nil {
		return err
	}
	networks, err := s.inventory.Networks(ctx)
	if err != nil {
		return err
	}
	text, err := (&output.TableFormatter{}).FormatNetworks(networks)
	if err != nil {
		return err
	}
	prompt.Println(s.console, divider)
	_, _ = s.console.Write([]byte(text))
	return nil
}

// createVM runs the wizard once against the session inventory.
func (s *session) createVM(ctx context.Context) error {
	prompt.Println(s.console, divider)
	prompt.Println(s.console, style.Section("Prism Cluster VM Creation Menu"))
	prompt.Println(s.console, divider)

	w := provision.NewWizard(s.console, s.inventory, s.api,
		provision.WithLogger(s.log.WithName("wizard")),
		provision.WithRecorder(s.metrics),
		provision.WithArchive(s.sink),
	)
	result, err := w.Run(ctx)
	if err != nil {
		return err
	}

	prompt.Println(s.console, style.Success("VM "+result.Request.Shape.Name+" submitted"))
	return nil
}
