package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meigma/gitindex/stale"
	"github.com/meigma/gitindex/status"
)

// verdictCodes are the one-letter codes printed by status.
var verdictCodes = map[stale.Verdict]string{
	stale.Clean:    " ",
	stale.Modified: "M",
	stale.Racy:     "R",
	stale.Deleted:  "D",
}

func newStatusCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare index entries with the working tree",
		Long: `Compare index entries with the working tree.

Each changed entry is printed with a code:
  M  metadata differs from the index
  R  metadata matches but the file changed in the same second the index was written
  D  file is missing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			results, err := repo.Status(cmd.Context())
			if err != nil {
				return err
			}
			if !all {
				results = status.Changed(results)
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%s %s %s\n", verdictCodes[r.Verdict], entryType(r.Entry), r.Entry.FilePath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include clean entries")
	return cmd
}
