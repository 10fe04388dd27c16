package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"csv-mapper/internal/header"
	"csv-mapper/internal/stream"
	"csv-mapper/mapping"
)

func (a *app) newInitCmd() *cobra.Command {
	var pkg, typeName, file, out string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a mapping profile inferred from a CSV header",
		Long: `Infer the column mapping of a CSV file from its header and save it as a YAML
profile. The profile can be edited and loaded with csvmapper.NewFromProfile.`,
		Example: `  csvmap init --pkg ./models --type Customer --file customers.csv --out customers.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sep, err := a.separator(cmd)
			if err != nil {
				return err
			}

			_, info, err := a.loadStruct(pkg, typeName)
			if err != nil {
				return err
			}

			line, err := stream.ReadHeader(nil, file, 0)
			if err != nil {
				return err
			}

			table := header.Infer(line, sep, info.Columns(), a.diagnostics())
			profile := mapping.ProfileFromTable(table, sep, true)

			if err := mapping.WriteProfile(profile, out); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "wrote %s (%d of %d fields mapped)\n", out, table.Len(), len(info.Fields))

			return nil
		},
	}

	cmd.Flags().StringVar(&pkg, "pkg", ".", "package pattern holding the struct")
	cmd.Flags().StringVar(&typeName, "type", "", "struct type name")
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file to read the header from")
	cmd.Flags().StringVarP(&out, "out", "o", "csvmap.yaml", "profile to write")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
