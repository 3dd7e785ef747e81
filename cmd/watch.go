package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/corviu/corviu-go/internal/bus"
	"github.com/corviu/corviu-go/internal/config"
	"github.com/corviu/corviu-go/internal/dependency"
	"github.com/corviu/corviu-go/internal/digest"
	"github.com/corviu/corviu-go/internal/notify"
	"github.com/corviu/corviu-go/internal/view"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow live change events and keep digest views current",
	RunE:  runWatch,
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return fmt.Errorf("no project configured (run `corviu seed --save` or edit %s)", configPathHint())
	}

	cont, err := dependency.New(cfg)
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}
	c := cont.Client()
	defer c.Close()

	viewsPath := cfg.Digest.ViewsFile
	if viewsPath == "" {
		viewsPath = config.ViewsPath()
	}
	manifest, err := view.LoadManifest(viewsPath)
	if err != nil {
		return err
	}
	views := make([]view.View, 0, len(manifest.Views))
	for _, spec := range manifest.Views {
		v := view.NewTextView(spec.Name, spec.Kind, os.Stdout)
		views = append(views, v)
		c.RegisterView(v)
	}

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c.On(bus.EventConnected, func(any) {
		fmt.Println("✓ Live channel connected.")
	})
	c.On(bus.EventError, func(p any) {
		fmt.Fprintf(os.Stderr, "channel error: %v (reconnecting)\n", p)
	})

	if !c.Init(ctx) {
		return fmt.Errorf("corviu service at %s is unavailable", cfg.Endpoint)
	}

	if sinks := notify.FromConfig(&cfg.Notify); len(sinks) > 0 {
		off := notify.Fanout(ctx, cont.Bus(), cfg.Project, sinks)
		defer off()
	}

	// Initial render before any push event arrives.
	for _, v := range views {
		cont.Refresher().Refresh(ctx, cfg.Project, v)
	}

	g, gctx := errgroup.WithContext(ctx)
	sched := digest.NewScheduler(cont.Refresher(), cfg.Project,
		cfg.Digest.Schedule, cfg.Digest.PollInterval(), views)
	g.Go(func() error { return sched.Start(gctx) })

	fmt.Printf("Watching project %s. Press Ctrl+C to stop.\n", cfg.Project)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}
