package cmd

import (
	"fmt"

	"github.com/jfmyers9/playseq/internal/audio"
	"github.com/spf13/cobra"
)

// devicesCmd represents the devices command
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List output devices",
	Long: `List the output devices playseq can play to, with the index accepted
by --device.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listDevices(cmd, audio.SpeakerLister{})
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func listDevices(cmd *cobra.Command, lister audio.DeviceLister) error {
	devices, err := lister.Devices()
	if err != nil {
		return fmt.Errorf("failed to list output devices: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(devices) == 0 {
		fmt.Fprintln(out, "No output devices found")
		return nil
	}
	for _, d := range devices {
		fmt.Fprintf(out, " %s\n", d)
	}
	return nil
}
