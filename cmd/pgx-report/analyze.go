package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pgxtools/pgx-report/internal/analyze"
	"github.com/pgxtools/pgx-report/internal/catalog"
	"github.com/pgxtools/pgx-report/internal/explain"
	"github.com/pgxtools/pgx-report/internal/output"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
		patientID    string
		strict       bool
		catalogDB    string
		explainURL   string
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "analyze [flags] <input-file>...",
		Short: "Analyze VCF files and report drug risks",
		Long: `Analyze one or more patient VCF files against the pharmacogene panel
and write a drug risk report per gene. Use '-' to read a single VCF
from stdin.`,
		Example: `  pgx-report analyze patient.vcf
  pgx-report analyze --format json -o report.json patient.vcf
  pgx-report analyze --patient-id PT-001 --strict patient.vcf
  pgx-report analyze *.vcf
  cat patient.vcf | pgx-report analyze -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args, analyzeOptions{
				format:     outputFormat,
				outputFile: outputFile,
				patientID:  patientID,
				strict:     strict,
				catalogDB:  catalogDB,
				explainURL: explainURL,
				workers:    workers,
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tab", "Output format: tab, json")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&patientID, "patient-id", "", "Patient identifier (default: VCF sample column)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject inputs that fail panel validation")
	cmd.Flags().StringVar(&catalogDB, "catalog-db", "", "Load marker catalog and rules from a DuckDB file")
	cmd.Flags().StringVar(&explainURL, "explain", "", "Explanation service URL (rewrites report summaries)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count for multi-file input (default: NumCPU)")

	return cmd
}

type analyzeOptions struct {
	format     string
	outputFile string
	patientID  string
	strict     bool
	catalogDB  string
	explainURL string
	workers    int
}

func runAnalyze(paths []string, opts analyzeOptions) error {
	tables, err := loadTables(opts.catalogDB)
	if err != nil {
		return err
	}

	a := analyze.NewAnalyzer(tables)
	a.SetLogger(logger)
	a.SetStrict(opts.strict)

	out := os.Stdout
	if opts.outputFile != "" {
		out, err = os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
	}

	var explainer *explain.Client
	if opts.explainURL != "" {
		explainer = explain.NewClient(explain.Config{URL: opts.explainURL})
		explainer.SetLogger(logger)
	}

	var writeResult func(*analyze.Result) error
	switch opts.format {
	case "tab":
		tw := output.NewTabWriter(out)
		if err := tw.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		writeResult = func(res *analyze.Result) error {
			for i := range res.Reports {
				if err := tw.Write(&res.Reports[i]); err != nil {
					return err
				}
			}
			return tw.Flush()
		}
	case "json":
		jw := output.NewJSONWriter(out, true)
		writeResult = jw.WriteResult
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}

	items := make(chan analyze.WorkItem, len(paths))
	for i, path := range paths {
		text, err := readInput(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		items <- analyze.WorkItem{Seq: i, Name: path, Text: text, PatientID: opts.patientID}
	}
	close(items)

	workers := opts.workers
	if len(paths) == 1 {
		workers = 1
	}

	results := a.ParallelAnalyze(items, workers)
	return analyze.OrderedCollect(results, func(r analyze.WorkResult) error {
		if r.Err != nil {
			return fmt.Errorf("%s: %w", r.Name, r.Err)
		}
		for _, perr := range r.Result.ParseErrors {
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", r.Name, perr)
		}
		if explainer != nil {
			addExplanations(explainer, r.Result)
		}
		return writeResult(r.Result)
	})
}

// addExplanations rewrites each report summary with the explanation
// service's plain-language text. Service failures leave the rule-based
// summary in place.
func addExplanations(client *explain.Client, res *analyze.Result) {
	for i := range res.Reports {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		text, err := client.Explain(ctx, &res.Reports[i], explain.DefaultPrompt)
		cancel()
		if err != nil {
			logger.Warn("explanation service unavailable",
				zap.String("gene", res.Reports[i].Profile.Gene),
				zap.Error(err))
			continue
		}
		res.Reports[i].Explanation.Summary = text
	}
}

// loadTables returns the catalog tables, either built-in or loaded from a
// DuckDB file. A configured default path applies when the flag is empty.
func loadTables(path string) (*catalog.Tables, error) {
	if path == "" {
		path = viper.GetString("catalog.db")
	}
	if path == "" {
		return catalog.Default(), nil
	}

	store, err := catalog.OpenStore(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	defer store.Close()

	tables, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading catalog database: %w", err)
	}

	logger.Info("loaded catalog from database",
		zap.String("path", path),
		zap.Int("markers", tables.MarkerCount()),
		zap.Int("rules", tables.RuleCount()))
	return tables, nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
