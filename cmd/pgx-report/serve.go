package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pgxtools/pgx-report/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr      string
		catalogDB string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP API",
		Long: `Serve the analysis pipeline over HTTP. POST a VCF to /api/v1/analyze
to receive the full report set as JSON.`,
		Example: `  pgx-report serve
  pgx-report serve --addr :9090
  curl -X POST localhost:8080/api/v1/analyze -d '{"vcf":"..."}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, catalogDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&catalogDB, "catalog-db", "", "Load marker catalog and rules from a DuckDB file")

	return cmd
}

func runServe(addr, catalogDB string) error {
	if configured := viper.GetString("server.addr"); configured != "" && addr == ":8080" {
		addr = configured
	}

	tables, err := loadTables(catalogDB)
	if err != nil {
		return err
	}

	srv := server.New(tables, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	return srv.Start(ctx, addr)
}
