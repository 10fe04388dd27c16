// Package commands implements the csvmap CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"csv-mapper/diagnostic"
	"csv-mapper/internal/analyze"
	"csv-mapper/mapping"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// envPrefix prefixes environment overrides, e.g. CSVMAP_SEPARATOR.
const envPrefix = "CSVMAP"

// app carries the state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	out     io.Writer
	logger  zerolog.Logger
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd(os.Stdout, os.Stderr).Execute()
}

// NewRootCmd builds the command tree writing results to out and logs to errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}

	rootCmd := &cobra.Command{
		Use:   "csvmap",
		Short: "csvmap generates CSV record schemas for Go structs",
		Long: `csvmap reads Go packages and writes record schemas for the csv-mapper library.
It can also check a CSV header against a struct and save the inferred mapping
as a profile.

Settings may come from flags, a .csvmap.yaml file or CSVMAP_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(errOut)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.csvmap.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("separator", string(mapping.DefaultSeparator), "cell separator")
	_ = a.v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = a.v.BindPFlag("separator", flags.Lookup("separator"))

	rootCmd.AddCommand(
		a.newGenCmd(),
		a.newHeadersCmd(),
		a.newInitCmd(),
		a.newVersionCmd(),
	)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	return rootCmd
}

// init reads configuration and sets up logging.
func (a *app) init(errOut io.Writer) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".csvmap")
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level := zerolog.InfoLevel
	if a.v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: errOut, NoColor: true}).
		Level(level).With().Timestamp().Logger()

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("file", used).Msg("using config file")
	}

	return nil
}

// separator returns the configured cell separator. A "mapping" section in the
// config file is decoded as a profile and supplies the default.
func (a *app) separator(cmd *cobra.Command) (rune, error) {
	raw := a.v.GetString("separator")

	if !cmd.Flags().Changed("separator") && !a.v.InConfig("separator") {
		profile, err := a.profileSettings()
		if err != nil {
			return 0, err
		}

		if profile != nil {
			return profile.SeparatorRune(), nil
		}
	}

	if utf8.RuneCountInString(raw) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", raw)
	}

	r, _ := utf8.DecodeRuneInString(raw)

	return r, nil
}

// profileSettings decodes the "mapping" config section, if any.
func (a *app) profileSettings() (*mapping.Profile, error) {
	settings := a.v.GetStringMap("mapping")
	if len(settings) == 0 {
		return nil, nil
	}

	return mapping.DecodeProfile(settings)
}

// diagnostics returns a sink logging through the CLI logger.
func (a *app) diagnostics() diagnostic.Sink {
	return diagnostic.NewLogSink(a.logger)
}

// loadStruct loads pkg and returns the analyzed struct typeName.
func (a *app) loadStruct(pkg, typeName string) (*analyze.Analyzer, *analyze.StructInfo, error) {
	analyzer := analyze.NewAnalyzer()

	a.logger.Debug().Str("pkg", pkg).Str("type", typeName).Msg("loading package")

	if _, err := analyzer.LoadPackages(pkg); err != nil {
		return nil, nil, err
	}

	info, err := analyzer.FindStruct(typeName)
	if err != nil {
		return nil, nil, err
	}

	sink := a.diagnostics()
	for _, d := range analyzer.Diagnostics().All() {
		sink.Emit(d)
	}

	if err := info.Diagnostics.Err(); err != nil {
		return nil, nil, fmt.Errorf("cannot map %s: %w", info.ID.Name, err)
	}

	return analyzer, info, nil
}
