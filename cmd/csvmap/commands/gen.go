package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"csv-mapper/internal/gen"
)

func (a *app) newGenCmd() *cobra.Command {
	var (
		pkg, typeName, outDir string
		noComments            bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the record schema of a struct",
		Long: `Generate <type>_csvmap.go next to the struct, holding <Type>Columns and <Type>Schema.

Fields may be renamed with a csv:"name" tag or skipped with csv:"-".`,
		Example: `  csvmap gen --pkg ./models --type Customer`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, info, err := a.loadStruct(pkg, typeName)
			if err != nil {
				return err
			}

			cfg := gen.DefaultGeneratorConfig()
			cfg.GenerateComments = !noComments
			cfg.OutputDir = outDir

			if cfg.OutputDir == "" {
				pkgInfo, _ := analyzer.Package(info.ID.PkgPath)
				cfg.OutputDir = pkgInfo.Dir
			}

			file, err := gen.NewGenerator(cfg).Generate(info)
			if err != nil {
				return err
			}

			if err := gen.WriteFiles([]gen.GeneratedFile{*file}, cfg.OutputDir); err != nil {
				return err
			}

			path := filepath.Join(cfg.OutputDir, file.Filename)
			a.logger.Debug().Str("file", path).Int("columns", len(info.Fields)).Msg("generated schema")
			fmt.Fprintf(a.out, "wrote %s (%d columns)\n", path, len(info.Fields))

			return nil
		},
	}

	cmd.Flags().StringVar(&pkg, "pkg", ".", "package pattern holding the struct")
	cmd.Flags().StringVar(&typeName, "type", "", "struct type name")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default is the package directory)")
	cmd.Flags().BoolVar(&noComments, "no-comments", false, "omit doc comments in generated code")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
