package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/gchange/internal/nglist"
)

var nglistsCmd = &cobra.Command{
	Use:   "nglists",
	Short: "List the NG lists available in ng.dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("nglists"); err != nil {
			return err
		}

		lists, err := nglist.Discover(cfg.NG.Dir, cfg.NG.Pattern)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(lists) == 0 {
			fmt.Fprintf(out, "no NG lists matching %q in %s\n", cfg.NG.Pattern, cfg.NG.Dir)
			return nil
		}
		for _, l := range lists {
			fmt.Fprintf(out, "%s\t%s\n", l.Name, l.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nglistsCmd)
}
