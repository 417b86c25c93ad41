package main

import (
	"errors"
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/meigma/gitindex/codec"
	"github.com/meigma/gitindex/schema"
	"github.com/meigma/gitindex/source"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		offset     int
		endian     string
		count      int
	)
	cmd := &cobra.Command{
		Use:   "decode FILE",
		Short: "Decode records from a file with a YAML schema",
		Example: `  gitindex decode --schema header.yaml .git/index
  gitindex decode --schema entry.yaml --offset 12 --count 3 .git/index`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if schemaPath == "" {
				return errors.New("--schema is required")
			}
			def, err := afero.ReadFile(a.fsys, schemaPath)
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}
			layout, err := schema.ParseYAML(def)
			if err != nil {
				return err
			}
			order := layout.Endian
			if endian != "" {
				if order, err = codec.ParseEndian(endian); err != nil {
					return err
				}
			}

			maxSize, err := parseSize(a.v.GetString(keyMaxIndexSize))
			if err != nil {
				return fmt.Errorf("invalid %s: %w", keyMaxIndexSize, err)
			}
			buf, err := source.ReadFile(cmd.Context(), a.fsys, args[0],
				source.WithMaxSize(maxSize),
				source.WithLogger(a.logger))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			at := offset
			for i := range max(count, 1) {
				rec, end, err := schema.DecodeAt(layout.Schema, buf.Data, order, at)
				if err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
				table := uitable.New()
				table.AddRow("FIELD", "VALUE")
				for name, v := range rec.All() {
					table.AddRow(name, v.String())
				}
				fmt.Fprintf(out, "# %s at %d\n", layout.Schema.Name(), at)
				fmt.Fprintln(out, table)
				at = end
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "YAML schema definition")
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset of the first record")
	cmd.Flags().StringVar(&endian, "endian", "", "override the schema byte order: big or little")
	cmd.Flags().IntVar(&count, "count", 1, "number of consecutive records")
	return cmd
}
