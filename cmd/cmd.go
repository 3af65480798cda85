// Package cmd defines the command-line interface for cpitrend.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("dataset", "", "Path to the CPI dataset (.csv or .xlsx) when not given as an argument")
	rootCmd.PersistentFlags().String("date-column", contract.DefaultDateColumn, "Header of the date column")
	rootCmd.PersistentFlags().String("value-column", contract.DefaultValueColumn, "Header of the CPI value column")
	rootCmd.PersistentFlags().String("date-format", schema.DefaultDateFormat, "Go time layout of the date column")
	rootCmd.PersistentFlags().String("sheet", "", "Worksheet to read from an XLSX dataset (default: first sheet)")
	rootCmd.PersistentFlags().String("series-name", contract.DefaultSeriesName, "Name of the series in the output")
	rootCmd.PersistentFlags().String("title", contract.DefaultTitle, "Report and chart title")
	rootCmd.PersistentFlags().Int("year-lag", schema.QuarterLag, "Observations per year used for year-over-year rates")
	rootCmd.PersistentFlags().String("annotations-file", "", "HCL file with annotation blocks (overrides the config file list)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
