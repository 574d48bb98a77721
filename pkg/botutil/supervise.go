package botutil

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task is a long-running unit of work. Run must return nil once ctx is
// done; a non-nil error stops every other task.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Supervise runs every task in its own goroutine and waits for all of them.
// The first task error cancels the shared context and is returned.
func Supervise(ctx context.Context, tasks ...Task) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() error {
			if err := task.Run(ctx); err != nil {
				return fmt.Errorf("%s: %w", task.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
