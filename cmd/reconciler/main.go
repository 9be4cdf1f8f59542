package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconciler/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌─┐┌─┐┌┐┌┌─┐┬┬  ┌─┐┬─┐
  ├┬┘├┤ │  │ │││││  ││  ├┤ ├┬┘
  ┴└─└─┘└─┘└─┘┘└┘└─┘┴┴─┘└─┘┴└─
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reconciler",
		Short: "A fiber and hook runtime for component trees",
		Long: `reconciler renders trees of stateful components.

Components keep local state in hooks bound by call order. State
changes schedule the owning fiber, and each render pass commits
the finished node trees to a render target:

  • memory, sqlite or any database/sql driver
  • S3 objects
  • a WebSocket stream of commit frames`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		demoCmd(),
		serveCmd(),
		tuiCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
