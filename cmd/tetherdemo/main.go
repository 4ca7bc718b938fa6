package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tetherdemo",
		Short: "Demo server for the tether reactive cell library",
		Long: `tetherdemo serves a live form-editing demo for tether cells.

Every browser connection gets its own draft cell tethered to a shared
server-side defaults signal. Edit the draft, rewrite the defaults, and
watch synchronization, severance, and reset behave in real time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
