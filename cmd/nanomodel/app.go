package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/nanomodel/internal/docfile"
	"github.com/arthur-debert/nanomodel/nanomodel"
	"github.com/arthur-debert/nanomodel/samples/library"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration keys shared by flags, NANOMODEL_* variables and the config
// file.
const (
	keyType      = "type"
	keyFormat    = "format"
	keyOutput    = "output"
	keyStrategy  = "strategy"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
)

// App is the nanomodel command line. Each App owns its own viper instance so
// several can run in one process.
type App struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper
	logger    *zap.Logger
	out       io.Writer
}

// newApp creates the CLI writing command output to out.
func newApp(out io.Writer) *App {
	app := &App{
		viperInst: viper.New(),
		logger:    zap.NewNop(),
		out:       out,
	}
	app.setupViperConfig()
	app.createRootCommand()
	app.addCommands()
	return app
}

// setupViperConfig configures Viper with environment variables and config files
func (app *App) setupViperConfig() {
	if configFile := os.Getenv("NANOMODEL_CONFIG"); configFile != "" {
		app.viperInst.SetConfigFile(configFile)
	} else {
		app.viperInst.SetConfigName("nanomodel")
		app.viperInst.SetConfigType("yaml")
		app.viperInst.AddConfigPath(".")
		app.viperInst.AddConfigPath("$HOME/.nanomodel")
	}

	app.viperInst.SetEnvPrefix("NANOMODEL")
	app.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	app.viperInst.AutomaticEnv()

	app.viperInst.SetDefault(keyOutput, "yaml")
	app.viperInst.SetDefault(keyLogLevel, "warn")
	app.viperInst.SetDefault(keyLogFormat, "console")
}

func (app *App) createRootCommand() {
	app.rootCmd = &cobra.Command{
		Use:   "nanomodel",
		Short: "Nanomodel CLI",
		Long: `Inspect, validate and normalize JSON and YAML documents against the
library schemas (Book, User, Library).

Every flag can also be set with a NANOMODEL_<FLAG> environment variable or in
a nanomodel.yaml file in the current directory or ~/.nanomodel.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.preRun,
	}

	flags := app.rootCmd.PersistentFlags()
	flags.StringP(keyType, "t", "", "schema the documents follow")
	flags.StringP(keyFormat, "f", "", "input format (default: from the file extension)")
	flags.StringP(keyOutput, "o", "yaml", "output format")
	flags.StringP(keyStrategy, "s", "", "population and serialization strategy")
	flags.String(keyLogLevel, "warn", "log level (debug, info, warn, error)")
	flags.String(keyLogFormat, "console", "log format (console, json)")
}

func (app *App) addCommands() {
	app.rootCmd.AddCommand(
		app.typesCommand(),
		app.validateCommand(),
		app.normalizeCommand(),
		app.diffCommand(),
	)
}

// Execute runs the root command.
func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs overrides the command line arguments, for tests.
func (app *App) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

func (app *App) preRun(cmd *cobra.Command, _ []string) error {
	if err := app.viperInst.BindPFlags(cmd.Flags()); err != nil {
		return NewConfigError("read flags", "cannot bind flags", err)
	}

	if err := app.viperInst.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return NewConfigError("read config", err.Error(), err)
		}
	}

	logger, err := newLogger(app.viperInst.GetString(keyLogLevel), app.viperInst.GetString(keyLogFormat))
	if err != nil {
		return NewConfigError("set up logging", fmt.Sprintf("invalid log level %q", app.viperInst.GetString(keyLogLevel)), err)
	}
	app.logger = logger
	app.logger.Debug("configuration loaded",
		zap.String("config", app.viperInst.ConfigFileUsed()),
		zap.String("type", app.viperInst.GetString(keyType)),
		zap.String("strategy", app.viperInst.GetString(keyStrategy)))
	return nil
}

// schema returns the schema named by --type.
func (app *App) schema(operation string) (*nanomodel.Schema, error) {
	name := app.viperInst.GetString(keyType)
	schema, ok := library.Lookup(name)
	if !ok {
		return nil, NewTypeError(operation, name, library.Names())
	}
	return schema, nil
}

// openDocument opens path honoring --format.
func (app *App) openDocument(operation, path string) (*docfile.File, error) {
	f, err := docfile.Open(path, app.viperInst.GetString(keyFormat))
	if err != nil {
		return nil, NewDocumentError(operation, path, err)
	}
	return f, nil
}

// loadModel reads path and builds a model of schema from it.
func (app *App) loadModel(ctx context.Context, operation, path string, schema *nanomodel.Schema) (*nanomodel.Model, error) {
	f, err := app.openDocument(operation, path)
	if err != nil {
		return nil, err
	}
	doc, err := f.Load(ctx)
	if err != nil {
		return nil, NewDocumentError(operation, path, err)
	}
	return schema.New(doc,
		nanomodel.WithLogger(app.logger),
		nanomodel.WithStrategy(app.viperInst.GetString(keyStrategy)),
		nanomodel.WithContext(path),
	), nil
}

// print encodes v in the --output format.
func (app *App) print(operation string, v any) error {
	format, err := outputFormat(app.viperInst.GetString(keyOutput))
	if err != nil {
		return NewConfigError(operation, err.Error(), err)
	}
	data, err := format.Encode(v)
	if err != nil {
		return &CLIError{Operation: operation, Cause: "cannot encode output", Details: err.Error(), Underlying: err}
	}
	_, err = app.out.Write(data)
	return err
}
