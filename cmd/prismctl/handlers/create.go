package handlers

import (
	"context"
)

// Create runs the VM wizard once without the menu.
func Create(ctx context.Context, opts Options) error {
	console := newConsole()

	s, err := openSession(ctx, opts, console)
	if err != nil {
		return err
	}
	defer s.close()

	return s.createVM(ctx)
}
