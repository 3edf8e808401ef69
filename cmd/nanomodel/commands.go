package main

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanomodel/formats"
	"github.com/arthur-debert/nanomodel/nanomodel"
	"github.com/arthur-debert/nanomodel/samples/library"
	"github.com/arthur-debert/nanomodel/types"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// outputFormat returns the registered format for --output.
func outputFormat(name string) (*formats.DocumentFormat, error) {
	return formats.Get(strings.ToLower(name))
}

type propInfo struct {
	Name string `json:"name" yaml:"name"`
	Cast string `json:"cast" yaml:"cast"`
}

type schemaInfo struct {
	Name  string     `json:"name" yaml:"name"`
	Props []propInfo `json:"props" yaml:"props"`
}

func (app *App) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the schemas and their properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []schemaInfo
			for _, name := range library.Names() {
				schema, _ := library.Lookup(name)
				info := schemaInfo{Name: schema.Name()}
				for _, prop := range schema.PropNames() {
					cfg, _ := schema.PropConfig(prop)
					info.Props = append(info.Props, propInfo{Name: prop, Cast: cfg.Cast.String()})
				}
				out = append(out, info)
			}
			return app.print("list types", out)
		},
	}
}

type validationReport struct {
	File   string          `json:"file" yaml:"file"`
	Valid  bool            `json:"valid" yaml:"valid"`
	Errors types.ErrorList `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func (app *App) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate documents against a schema",
		Long: `Validate runs every validate recipe of the schema over each document and
prints the error codes found, keyed by property path. The command fails when
any document is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := app.schema("validate")
			if err != nil {
				return err
			}

			reports := make([]validationReport, 0, len(args))
			invalid := 0
			for _, path := range args {
				m, err := app.loadModel(cmd.Context(), "validate", path, schema)
				if err != nil {
					return err
				}
				if err := m.Validate(cmd.Context(), nanomodel.ValidateOptions{Quiet: true}); err != nil {
					return &CLIError{Operation: "validate", Cause: path, Details: err.Error(), Underlying: err}
				}

				report := validationReport{File: path, Valid: m.IsValid(), Errors: m.CollectErrors()}
				if !report.Valid {
					invalid++
					app.logger.Info("document invalid", zap.String("file", path), zap.Int("errors", len(report.Errors)))
				}
				reports = append(reports, report)
			}

			if err := app.print("validate", reports); err != nil {
				return err
			}
			if invalid > 0 {
				return errSilentExit
			}
			return nil
		},
	}
}

func (app *App) normalizeCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Rewrite a document the way the schema serializes it",
		Long: `Normalize populates a model from the document and prints what it serializes
to: unknown keys dropped, values cast, defaults filled in and keys in
declaration order. With --write the document is replaced in place, in its own
format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			schema, err := app.schema("normalize")
			if err != nil {
				return err
			}
			strategy := app.viperInst.GetString(keyStrategy)

			if !write {
				m, err := app.loadModel(cmd.Context(), "normalize", path, schema)
				if err != nil {
					return err
				}
				return app.print("normalize", m.View(strategy))
			}

			f, err := app.openDocument("normalize", path)
			if err != nil {
				return err
			}
			err = f.Update(cmd.Context(), func(doc map[string]any) (any, error) {
				m := schema.New(doc,
					nanomodel.WithLogger(app.logger),
					nanomodel.WithStrategy(strategy),
					nanomodel.WithContext(path),
				)
				return m.View(strategy), nil
			})
			if err != nil {
				return NewDocumentError("normalize", path, err)
			}
			app.logger.Info("document normalized", zap.String("file", path))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "replace the document instead of printing it")
	return cmd
}

func (app *App) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Compare two documents as models",
		Long: `Diff builds a model from each document and compares what they serialize to,
so formatting, key order and unknown keys do not count. It lists the
top-level properties that differ and fails when there is any.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := app.schema("diff")
			if err != nil {
				return err
			}
			left, err := app.loadModel(cmd.Context(), "diff", args[0], schema)
			if err != nil {
				return err
			}
			right, err := app.loadModel(cmd.Context(), "diff", args[1], schema)
			if err != nil {
				return err
			}

			strategy := app.viperInst.GetString(keyStrategy)
			a, b := left.Serialize(strategy), right.Serialize(strategy)
			var changed []string
			for _, name := range schema.PropNames() {
				if !cmp.Equal(a[name], b[name]) {
					changed = append(changed, name)
				}
			}
			if len(changed) == 0 {
				fmt.Fprintln(app.out, "documents are equal")
				return nil
			}
			for _, name := range changed {
				fmt.Fprintf(app.out, "~ %s\n", name)
			}
			return errSilentExit
		},
	}
}
