package main

import (
	"fmt"
	"io"
	"time"

	"fakexlsx/adapters/excel"
	"fakexlsx/internal"
	"fakexlsx/internal/config"
	"fakexlsx/internal/export"
	"fakexlsx/internal/form"
	"fakexlsx/internal/schema"
	"fakexlsx/internal/summary"
	"fakexlsx/ui"

	"github.com/spf13/cobra"
)

// clock is replaced in tests.
var clock = time.Now

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fakexlsx",
		Short:         "Generate daily time series spreadsheets filled with random values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	rootCmd.AddCommand(
		newGenerateCmd(),
		newInspectCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	var (
		years       int
		columns     []string
		schemaFile  string
		outPath     string
		sheet       string
		seed        int64
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a spreadsheet from a schema",
		Long: `Generate one row per day from today minus N*365 days up to today,
with one random value per declared column.

Columns come from, in order of preference:
  --interactive        answer the form questions on stdin
  --schema FILE        a YAML schema file (or FAKEXLSX_SCHEMA)
  --column SPEC        repeated name:type:range-or-list flags

Examples:
  fakexlsx generate --years 2 --column "Sales:integer:1-100" --column "Status:string:Active,Inactive"
  fakexlsx generate --schema schema.yaml --out report.xlsx --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("out") {
				outPath = cfg.Output.Path
			}
			if !cmd.Flags().Changed("sheet") {
				sheet = cfg.Output.Sheet
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Random.Seed
			}
			if schemaFile == "" {
				schemaFile = cfg.Output.SchemaFile
			}

			var sch *schema.Schema
			switch {
			case interactive:
				in, err := form.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Collect()
				if err != nil {
					return err
				}
				if sch, err = schema.Parse(in); err != nil {
					return err
				}
			case schemaFile != "" && len(columns) == 0:
				if sch, err = schema.LoadFile(schemaFile); err != nil {
					return err
				}
				if cmd.Flags().Changed("years") {
					if err := schema.ValidateYears(years); err != nil {
						return err
					}
					sch.Years = years
				}
			default:
				in := schema.Input{Years: years}
				for _, c := range columns {
					ci, err := schema.ParseColumnFlag(c)
					if err != nil {
						return err
					}
					in.Columns = append(in.Columns, ci)
				}
				if sch, err = schema.Parse(in); err != nil {
					return err
				}
			}

			exporter := export.NewExporter(internal.DefaultLogger).WithClock(clock)
			res, err := exporter.Export(cmd.Context(), export.Request{
				Schema: sch,
				Path:   outPath,
				Sheet:  sheet,
				Seed:   seed,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message())
			fmt.Fprintf(cmd.OutOrStdout(), "Total Columns: %d | Total Rows: %d | Seed: %d\n", res.Columns+1, res.Rows, res.Seed)
			return nil
		},
	}

	cmd.Flags().IntVar(&years, "years", 1, "Number of years to cover (365 days each)")
	cmd.Flags().StringArrayVar(&columns, "column", nil, "Column as name:type:range-or-list (repeatable)")
	cmd.Flags().StringVar(&schemaFile, "schema", "", "YAML schema file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "fake_data.xlsx", "Output file (.xlsx or .csv)")
	cmd.Flags().StringVar(&sheet, "sheet", excel.DefaultSheet, "Sheet name")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 seeds from the clock)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask for the schema on stdin")

	return cmd
}

func newInspectCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Summarize the columns of a generated spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := excel.NewDataReader(args[0])
			if sheet != "" {
				reader = reader.WithSheet(sheet)
			}
			table, err := reader.ReadData()
			if err != nil {
				return err
			}
			report, err := summary.Summarize(table)
			if err != nil {
				return err
			}
			report.Print(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to read (default: first sheet)")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.Server.Port
			}
			app, err := ui.NewApp(ui.Config{
				Port:  port,
				Sheet: cfg.Output.Sheet,
				Seed:  cfg.Random.Seed,
			}, internal.DefaultLogger)
			if err != nil {
				return err
			}
			return app.Start()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default $PORT or 8080)")
	return cmd
}
