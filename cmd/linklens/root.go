package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for LinkLens.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linklens",
		Short: "Verify backlinks and page-level SEO signals at scale",
		Long: `LinkLens checks whether web pages contain a link to a target domain with
the expected anchor text and rel attributes, and reports page-level SEO
signals: indexability, canonical self-reference, and title.

It is built for link-auditing and outreach-monitoring workflows: feed it a
sheet of page URLs (CSV or XLSX) or a list of URLs plus a target domain,
and it produces one verification record per page.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
