package main

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/meigma/gitindex/index"
	"github.com/meigma/gitindex/internal/pathutil"
)

func newLsFilesCmd(a *app) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "ls-files [DIR]",
		Short: "List index entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefix string
			if len(args) == 1 {
				prefix = pathutil.DirPrefix(pathutil.Clean(args[0]))
			}
			repo, err := a.open()
			if err != nil {
				return err
			}
			snap, err := repo.Index(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !long {
				for e := range snap.Index.EntriesWithPrefix(prefix) {
					fmt.Fprintln(out, e.FilePath)
				}
				return nil
			}

			table := uitable.New()
			table.AddRow("MODE", "OBJECT", "SIZE", "MTIME", "PATH")
			for e := range snap.Index.EntriesWithPrefix(prefix) {
				table.AddRow(
					fmt.Sprintf("%06o", e.Mode),
					e.ObjectID.String(),
					units.HumanSize(float64(e.FileSize)),
					e.Mtime.Time().UTC().Format("2006-01-02T15:04:05Z"),
					e.FilePath,
				)
			}
			fmt.Fprintln(out, table)
			fmt.Fprintf(out, "%d entries, version %d, %s\n",
				snap.Index.Len(), snap.Index.Header.Version, snap.Digest)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show mode, object, size and mtime")
	return cmd
}

// entryType names the object type of e.
func entryType(e index.Entry) string {
	switch e.Type() {
	case index.TypeDirectory:
		return "tree"
	case index.TypeSymlink:
		return "symlink"
	case index.TypeGitlink:
		return "commit"
	default:
		return "blob"
	}
}
