package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/glimt/internal/daemon"
	"github.com/jmylchreest/glimt/internal/dbus"
	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/output"
)

var screensOpts struct {
	format string
	remote bool
}

var screensCmd = &cobra.Command{
	Use:   "screens",
	Short: "List detected screens",
	Long: `List the screens annotations can be placed on, with their geometry
in global desktop coordinates.

Examples:
  # Human-readable list
  glimt screens

  # Machine-readable
  glimt screens --format json
  glimt screens --format yaml`,
	RunE: runScreens,
}

func init() {
	rootCmd.AddCommand(screensCmd)

	screensCmd.Flags().StringVarP(&screensOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	screensCmd.Flags().BoolVar(&screensOpts.remote, "remote", false,
		"Ask a running glimtd for its screen list")
}

func runScreens(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(screensOpts.format)
	if err != nil {
		return err
	}

	var screens []model.Screen
	if screensOpts.remote {
		client, err := dbus.NewClient()
		if err != nil {
			return err
		}
		screens, err = client.ListScreens()
		if err != nil {
			return err
		}
	} else {
		screens, err = daemon.NewProvider(cfg, logger).Screens()
		if err != nil {
			return err
		}
	}

	return output.NewFormatter(format).Format(os.Stdout, screens)
}
