// Package cmd contains the CLI commands for genscope.
package cmd

import (
	"fmt"
	"os"

	"github.com/genscope/genscope/internal/config"
	"github.com/genscope/genscope/internal/generics"
	"github.com/genscope/genscope/internal/output"
	"github.com/genscope/genscope/internal/parser"
	"github.com/genscope/genscope/internal/syntax"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the current version of genscope
	Version = "0.1.0"

	// Global flags
	verbose     bool
	configPath  string
	contextMode = &contextModeValue{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "genscope [file]",
	Short: "Summarize generic parameters and lifetimes in a Rust source file",
	Long: `genscope parses a single Rust source file and reports every generic type
parameter with its trait bounds, and every lifetime parameter, attributed to the
struct, trait or function that declares it.

The report has two sections:
  === Generic Types ===   one block per type parameter, in source order
  === Lifetimes ===       lifetimes grouped by name with every declaring context

When no file is given the configured default path is used (src/sample.rs unless
.genscope/config.yaml says otherwise).

Context Modes:
  scoped:     labels are restored when a declaration ends (default)
  overwrite:  every struct/trait/function overwrites the label and nothing
              restores it, so nested declarations leak into later siblings

Examples:
  genscope                              # Analyze src/sample.rs
  genscope src/lib.rs                   # Analyze another file
  genscope --context-mode overwrite     # Reproduce flat context labels
  genscope init                         # Write a default config`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .genscope/config.yaml)")
	rootCmd.Flags().Var(contextMode, "context-mode", "Context tracking (scoped|overwrite), overrides config")
}

// sourceParser is the parsing capability the root command depends on.
type sourceParser interface {
	ParseFile(path string) (*syntax.File, error)
	Close()
}

// newSourceParser is replaced in tests.
var newSourceParser = func() (sourceParser, error) {
	p, err := parser.NewParser()
	if err != nil {
		return nil, err
	}
	return p, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := collectorOptions(cfg)
	if err != nil {
		return err
	}

	path := cfg.Input.DefaultPath
	if len(args) == 1 {
		path = args[0]
	}

	p, err := newSourceParser()
	if err != nil {
		return fmt.Errorf("creating parser: %w", err)
	}
	defer p.Close()

	logf(cmd, "parsing %s", path)
	file, err := p.ParseFile(path)
	if err != nil {
		return err
	}
	logf(cmd, "parsed %d declarations", countItems(file))

	c := generics.Collect(file, opts)
	logf(cmd, "collected %d type parameters and %d lifetimes (context mode: %s)",
		len(c.Types()), len(c.Lifetimes()), opts.Mode)

	return output.WriteText(cmd.OutOrStdout(), output.NewReport(c))
}

// loadConfig reads the --config file when given, otherwise searches upward
// from the working directory.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
			}
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return config.LoadFromPath(configPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.Load(cwd)
}

// collectorOptions resolves the collector settings, letting --context-mode
// win over the config file.
func collectorOptions(cfg *config.Config) (generics.Options, error) {
	mode, err := generics.ParseContextMode(cfg.Context.Mode)
	if err != nil {
		return generics.Options{}, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	if contextMode.set {
		mode = contextMode.mode
	}

	kinds := make([]syntax.Kind, 0, len(cfg.Context.Kinds))
	for _, name := range cfg.Context.Kinds {
		k, ok := syntax.KindFromString(name)
		if !ok {
			return generics.Options{}, fmt.Errorf("%w: unknown declaration kind %q", config.ErrInvalidConfig, name)
		}
		kinds = append(kinds, k)
	}

	return generics.Options{Mode: mode, LabelKinds: kinds}, nil
}

func countItems(file *syntax.File) int {
	n := 0
	syntax.Walk(file.Items, func(*syntax.Item) bool {
		n++
		return true
	})
	return n
}

// logf writes a diagnostic line to stderr when --verbose is set.
func logf(cmd *cobra.Command, format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "# "+format+"\n", args...)
}

// contextModeValue is a pflag.Value that only accepts known context modes.
type contextModeValue struct {
	mode generics.ContextMode
	set  bool
}

var _ pflag.Value = (*contextModeValue)(nil)

func (v *contextModeValue) String() string {
	if !v.set {
		return ""
	}
	return v.mode.String()
}

func (v *contextModeValue) Set(s string) error {
	mode, err := generics.ParseContextMode(s)
	if err != nil {
		return err
	}
	v.mode = mode
	v.set = true
	return nil
}

func (v *contextModeValue) Type() string {
	return "mode"
}
