// Package main provides the pgx-report command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pgx-report",
		Short: "Pharmacogenomic risk reports from VCF genotype data",
		Long: `pgx-report screens patient VCF files against a panel of pharmacogenes
(CYP2D6, CYP2C19, CYP2C9, TPMT, DPYD, SLCO1B1) and produces drug risk
reports based on CPIC dosing guidelines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
	}

	cobra.OnInitialize(initConfig)

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.pgx-report.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pgx-report version %s (%s) built %s\n", version, commit, date)
		},
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".pgx-report")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("PGX_REPORT")
	viper.AutomaticEnv()

	// Missing config file is fine; the defaults cover everything.
	_ = viper.ReadInConfig()
}

func setupLogger() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	var err error
	logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	return nil
}
