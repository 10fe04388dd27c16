package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"csv-mapper/internal/analyze"
	"csv-mapper/internal/header"
	"csv-mapper/internal/stream"
)

func (a *app) newHeadersCmd() *cobra.Command {
	var pkg, typeName, file string

	cmd := &cobra.Command{
		Use:     "headers",
		Short:   "Show how the header of a CSV file matches a struct",
		Example: `  csvmap headers --pkg ./models --type Customer --file customers.csv`,
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

			columns := header.Analyze(line, sep, info.Columns())
			printHeaderTable(a.out, columns)

			if missing := unmappedFields(info, columns); len(missing) > 0 {
				fmt.Fprintf(a.out, "\nfields without a column: %s\n", strings.Join(missing, ", "))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&pkg, "pkg", ".", "package pattern holding the struct")
	cmd.Flags().StringVar(&typeName, "type", "", "struct type name")
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file to read the header from")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// printHeaderTable renders one row per header column.
func printHeaderTable(w io.Writer, columns []header.Column) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Index", "Header", "Field", "Status", "Suggestions"})

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, c := range columns {
		status := c.Status.String()
		if c.Status == header.StatusDuplicate {
			status += " of " + strconv.Itoa(c.Shadowed)
		}

		table.Append([]string{
			strconv.Itoa(c.Index),
			c.Raw,
			c.Field,
			status,
			strings.Join(c.Suggestions, ", "),
		})
	}

	table.Render()
}

// unmappedFields lists the columns of info that no header cell matched.
func unmappedFields(info *analyze.StructInfo, columns []header.Column) []string {
	matched := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c.Field != "" {
			matched[c.Field] = true
		}
	}

	var out []string

	for _, name := range info.Columns() {
		if !matched[name] {
			out = append(out, name)
		}
	}

	return out
}
