// Package main provides the CLI entry point for xltables.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ukaji3/xltables-go/internal/config"
	"github.com/ukaji3/xltables-go/internal/logging"
	"github.com/ukaji3/xltables-go/internal/server"
	"github.com/ukaji3/xltables-go/pkg/xltables"
	"github.com/ukaji3/xltables-go/pkg/xltables/output"
)

var (
	sourceFlag string
	addrFlag   string
	pretty     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xltables",
		Short: "Serve the named tables of a spreadsheet workbook",
		Long: `xltables finds the informal tables of a workbook (upper-case header cells
followed by a run of row labels) and exposes their names, rows and row values.

The workbook is read from WORKBOOK_URL (or --source) on every request.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Workbook URL or file path (default: $WORKBOOK_URL)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		newServeCmd(),
		newTablesCmd(),
		newRowsCmd(),
		newSumCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads .env and the environment, then applies flag overrides.
func setup() (*config.Config, *logging.Logger, error) {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if sourceFlag != "" {
		cfg.Workbook.Source = sourceFlag
	}
	if addrFlag != "" {
		cfg.Server.Port = addrFlag
	}

	return cfg, logging.New(cfg.LogLevel), nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg.Options(logger), logger)
			return srv.ListenAndServe(ctx, cfg.Server.Addr())
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address or port (default: $PORT or 8080)")

	return cmd
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List table names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			names, err := xltables.ListTables(cmd.Context(), cfg.Options(logger))
			if err != nil {
				return err
			}

			jsonData, err := output.TablesToJSON(names, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		},
	}
}

func newRowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rows [table]",
		Short: "List the row labels of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			rows, err := xltables.TableRows(cmd.Context(), cfg.Options(logger), args[0])
			if err != nil {
				return err
			}

			jsonData, err := output.ToJSON(rows.AsMap(), pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		},
	}
}

func newSumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sum [table] [row]",
		Short: "Resolve the integer value of a table row",
		Long: `Resolve the value next to a row label. Fractions up to 1 are read as
percentages (0.08 is 8) and "8%" is 8; values that are not whole numbers fail.

Example: xltables sum "DISCOUNT RATE" "Discount rate"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			sum, err := xltables.RowSum(cmd.Context(), cfg.Options(logger), args[0], args[1])
			if err != nil {
				return err
			}

			jsonData, err := output.ToJSON(sum, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		},
	}
}
