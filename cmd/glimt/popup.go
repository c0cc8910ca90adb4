package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/glimt/internal/model"
)

var popupOpts struct {
	remote bool
}

var popupCmd = &cobra.Command{
	Use:   "popup TEXT X Y WIDTH HEIGHT",
	Short: "Show a text popup anchored to a screen region",
	Long: `Show a small text popup above the given anchor rectangle.

The popup is placed on the screen containing the anchor, horizontally
centered over it, preferring the space above and falling back to below
near the top edge. Text that does not fit is truncated with an ellipsis.

Examples:
  # Announce a save above the region that changed
  glimt popup "saved!" 100 200 400 300

  # Point at a single spot
  glimt popup "over here" 960 540 1 1`,
	Args: cobra.ExactArgs(5),
	RunE: runPopup,
}

func init() {
	rootCmd.AddCommand(popupCmd)

	popupCmd.Flags().BoolVar(&popupOpts.remote, "remote", false,
		"Send the annotation to a running glimtd instead of rendering in-process")
}

func runPopup(cmd *cobra.Command, args []string) error {
	anchor, err := parseRect(args[1:])
	if err != nil {
		return err
	}
	a := model.Popup{Text: args[0], Anchor: anchor}

	if popupOpts.remote {
		return annotateRemote(a)
	}
	return annotateLocal(cmd.Context(), a)
}
