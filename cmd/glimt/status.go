package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/glimt/internal/dbus"
)

var statusOpts struct {
	json bool
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running glimtd",
	Long: `Query a running glimtd over D-Bus and report its version, uptime
and annotation counts.

Fails when no daemon owns the bus name.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false,
		"Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}

	info, err := client.Status()
	if err != nil {
		return err
	}

	if statusOpts.json {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	fmt.Printf("glimtd %s\n", info.Version)
	fmt.Printf("uptime:  %s\n", info.Uptime)
	fmt.Printf("active:  %d\n", info.Active)
	fmt.Printf("served:  %d\n", info.Served)
	return nil
}
