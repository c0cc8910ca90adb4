package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/glimt/internal/daemon"
	"github.com/jmylchreest/glimt/internal/dbus"
	"github.com/jmylchreest/glimt/internal/model"
)

var highlightOpts struct {
	remote bool
}

func init() {
	rootCmd.Flags().BoolVar(&highlightOpts.remote, "remote", false,
		"Send the annotation to a running glimtd instead of rendering in-process")
}

// runHighlight shows a highlight rectangle from the root command's four
// positional arguments.
func runHighlight(cmd *cobra.Command, args []string) error {
	rect, err := parseRect(args)
	if err != nil {
		return err
	}
	a := model.Highlight{Rect: rect}

	if highlightOpts.remote {
		return annotateRemote(a)
	}
	return annotateLocal(cmd.Context(), a)
}

// parseRect converts four positional arguments into a rectangle.
func parseRect(args []string) (model.Rect, error) {
	vals := make([]int, 4)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return model.Rect{}, fmt.Errorf("%w: %q is not an integer", model.ErrInvalidArguments, arg)
		}
		vals[i] = v
	}
	return model.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// annotateLocal renders the annotation in this process, blocking until the
// fade cycle completes.
func annotateLocal(ctx context.Context, a model.Annotation) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var chime func()
	if cfg.Sound.Enabled {
		player := daemon.NewChime(cfg, logger)
		defer player.Close()
		chime = func() { _ = player.Play() }
	}

	provider := daemon.NewProvider(cfg, logger)
	return daemon.RunOnce(ctx, cfg, provider, a, chime, logger)
}

// annotateRemote hands the annotation to a running glimtd and prints the
// request ID.
func annotateRemote(a model.Annotation) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}

	var id string
	switch v := a.(type) {
	case model.Highlight:
		id, err = client.Highlight(v.Rect)
	case model.Popup:
		id, err = client.Popup(v.Text, v.Anchor)
	default:
		return fmt.Errorf("%w: unknown annotation kind %q", model.ErrInvalidArguments, a.Kind())
	}
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}
