// Package globals defines the flags every locallift command accepts.
package globals

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags are the persistent flags registered on the root command.
type Flags struct {
	Output  string
	Quiet   bool
	Verbose bool
	NoColor bool
}

// AddFlags registers the global flags on root.
func AddFlags(root *cobra.Command) *Flags {
	f := &Flags{}
	pf := root.PersistentFlags()

	pf.StringVarP(&f.Output, "output", "o", "", "output format: table, wide, json, yaml")
	pf.BoolVarP(&f.Quiet, "quiet", "q", false, "only print results, warnings and errors")
	pf.BoolVarP(&f.Verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&f.NoColor, "no-color", false, "disable colored messages (also NO_COLOR)")
	return f
}

// Parse reads the global flags as seen by cmd. Flags that are not
// registered, as when a subcommand runs on its own, read as zero values.
func Parse(cmd *cobra.Command) *Flags {
	fs := cmd.Flags()
	return &Flags{
		Output:  stringFlag(fs, "output"),
		Quiet:   boolFlag(fs, "quiet"),
		Verbose: boolFlag(fs, "verbose"),
		NoColor: boolFlag(fs, "no-color") || os.Getenv("NO_COLOR") != "",
	}
}

func stringFlag(fs *pflag.FlagSet, name string) string {
	if f := fs.Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func boolFlag(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Value.String() == "true"
}
