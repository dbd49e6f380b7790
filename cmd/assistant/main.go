// Command assistant maps semi-structured record data to categorical labels.
// It partitions JSON Lines records into per-field corpora (prepare), trains a
// TF-IDF + multinomial Naive Bayes classifier over a labeled directory tree
// (train), and scores new phrases against the trained model (test-phrase).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/history"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/predict"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/config"
	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/redis"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(pkgerrors.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "assistant",
		Short:         "Map record data to categorical labels with a trained text classifier",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	root.AddCommand(
		newPrepareCmd(&configPath),
		newTrainCmd(&configPath),
		newTestPhraseCmd(&configPath),
	)
	return root
}

func newPrepareCmd(configPath *string) *cobra.Command {
	var (
		jsonlinesFile string
		outputDir     string
		maxRecords    int
		source        string
	)
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Read a JSON Lines stream and write one corpus file per field name",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("jsonlines-file") {
				cfg.Pipeline.JSONLinesFile = jsonlinesFile
			}
			if cmd.Flags().Changed("output-directory") {
				cfg.Pipeline.OutputDirectory = outputDir
			}
			if cmd.Flags().Changed("max-records") {
				cfg.Pipeline.MaxRecords = maxRecords
			}
			if cmd.Flags().Changed("source") {
				cfg.Pipeline.Source = source
			}
			return runOperation(cfg, func(ctx context.Context, p *pipeline.Pipeline, params pipeline.Params) error {
				src, err := buildSource(cfg)
				if err != nil {
					return err
				}
				return p.Prepare(ctx, src, params)
			})
		},
	}
	cmd.Flags().StringVar(&jsonlinesFile, "jsonlines-file", "", "JSON Lines input file (RMA_JSONLINES_FILE)")
	cmd.Flags().StringVar(&outputDir, "output-directory", "", "directory for output files (RMA_OUTPUT_DIRECTORY)")
	cmd.Flags().IntVar(&maxRecords, "max-records", 0, "maximum records to read, 0 for no cap (RMA_MAX_RECORDS)")
	cmd.Flags().StringVar(&source, "source", "", "record source: file or kafka (RMA_SOURCE)")
	return cmd
}

func newTrainCmd(configPath *string) *cobra.Command {
	var (
		inputDir  string
		modelFile string
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a classifier over a labeled corpus directory and write the model artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("input-directory") {
				cfg.Pipeline.InputDirectory = inputDir
			}
			if cmd.Flags().Changed("model-file") {
				cfg.Pipeline.ModelFile = modelFile
			}
			return runOperation(cfg, func(ctx context.Context, p *pipeline.Pipeline, params pipeline.Params) error {
				return p.Train(ctx, params)
			})
		},
	}
	cmd.Flags().StringVar(&inputDir, "input-directory", "", "corpus directory from the prepare step (RMA_INPUT_DIRECTORY)")
	cmd.Flags().StringVar(&modelFile, "model-file", "", "output filename of the trained model (RMA_MODEL_FILE)")
	return cmd
}

func newTestPhraseCmd(configPath *string) *cobra.Command {
	var (
		testPhrase string
		modelFile  string
	)
	cmd := &cobra.Command{
		Use:   "test-phrase",
		Short: "Classify a phrase against a trained model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("test-phrase") {
				cfg.Pipeline.TestPhrase = testPhrase
			}
			if cmd.Flags().Changed("model-file") {
				cfg.Pipeline.ModelFile = modelFile
			}
			return runOperation(cfg, func(ctx context.Context, p *pipeline.Pipeline, params pipeline.Params) error {
				result, err := p.TestPhrase(ctx, params)
				if err != nil {
					return err
				}
				fmt.Printf("Phrase: %q Category: %q\n", params.TestPhrase, result.Category)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&testPhrase, "test-phrase", "", "phrase to classify (RMA_TEST_PHRASE)")
	cmd.Flags().StringVar(&modelFile, "model-file", "", "trained model file (RMA_MODEL_FILE)")
	return cmd
}

// runOperation performs the shared setup around one pipeline operation:
// logging, metrics, optional integrations, and signal handling.
func runOperation(
	cfg *config.Config,
	op func(ctx context.Context, p *pipeline.Pipeline, params pipeline.Params) error,
) error {
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	if cfg.Metrics.Enabled {
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	var hist pipeline.HistoryRecorder
	if cfg.Postgres.Enabled {
		db, err := postgres.New(cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()
		hist = history.NewStore(db)
	}

	var cache pipeline.PredictionCache
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		cache = predict.NewCache(client, cfg.Redis)
	}

	params := pipeline.Params{
		JSONLinesFile:   cfg.Pipeline.JSONLinesFile,
		InputDirectory:  cfg.Pipeline.InputDirectory,
		OutputDirectory: cfg.Pipeline.OutputDirectory,
		ModelFile:       cfg.Pipeline.ModelFile,
		TestPhrase:      cfg.Pipeline.TestPhrase,
		MaxRecords:      cfg.Pipeline.MaxRecords,
	}
	return op(ctx, pipeline.New(m, hist, cache), params)
}

func buildSource(cfg *config.Config) (corpus.Source, error) {
	switch cfg.Pipeline.Source {
	case config.SourceKafka:
		return corpus.NewKafkaSource(cfg.Kafka, cfg.Pipeline.MaxRecords)
	default:
		if cfg.Pipeline.JSONLinesFile == "" {
			return nil, pkgerrors.New(pkgerrors.ErrInvalidInput, "no jsonlines file configured")
		}
		return corpus.NewFileSource(cfg.Pipeline.JSONLinesFile, cfg.Pipeline.MaxRecords), nil
	}
}
