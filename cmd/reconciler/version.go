package main

import (
	"database/sql"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// buildVersion returns the linker-set version, falling back to the module
// version recorded by go install.
func buildVersion() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and runtime capabilities",
		Long: `Print the build of this binary together with the render target
kinds it accepts and the database/sql drivers linked into it.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, buildVersion())
				return
			}
			printVersion(out)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version")

	return cmd
}

func printVersion(w io.Writer) {
	fmt.Fprint(w, banner)
	rows := [][2]string{
		{"reconciler", buildVersion()},
		{"commit", commit},
		{"built", date},
		{"go", fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)},
		{"targets", strings.Join(targetKinds, ", ")},
		{"sql drivers", strings.Join(sql.Drivers(), ", ")},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-12s %s\n", row[0]+":", row[1])
	}
	fmt.Fprintln(w)
}
