package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/vibrato-sonar/transcode"
)

var probeCmd = &cobra.Command{
	Use:   "probe [audio file]",
	Short: "Print the audio properties of a recording without decoding it",
	Args:  cobra.ExactArgs(1),
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	filename := args[0]

	decoder := transcode.NewDecoder(decoderConfigFromViper())
	metadata, err := decoder.ProbeFile(filename)
	if err != nil {
		return fmt.Errorf("probe %s: %w", filename, err)
	}

	return writeJSON(metadata)
}
