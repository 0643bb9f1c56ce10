package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ml-registry/model-registry/pkg/config"
	"github.com/ml-registry/model-registry/pkg/logging"
	"github.com/ml-registry/model-registry/pkg/modelimport"
	"github.com/ml-registry/model-registry/pkg/registry/database"
	"github.com/ml-registry/model-registry/pkg/registry/repositories"
	"github.com/ml-registry/model-registry/pkg/registry/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		csvPath string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "import_models_csv",
		Short: "Register models listed in a CSV file",
		Long: "Reads a CSV with the columns " + strings.Join(modelimport.Columns, ", ") +
			" and registers every row as a model. Tags are separated by ';', metrics are a JSON object.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), ".env not loaded: %v\n", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := database.Connect(cfg.DatabaseURL, database.Options{
				Logger: logging.GormLogger(logger, cfg.Debug),
			})
			if err != nil {
				return fmt.Errorf("database connection failed: %w", err)
			}
			defer func() { _ = database.Close(db) }()

			svc := services.NewModelService(repositories.NewModelRepository(db), logger)
			result, err := modelimport.ImportCSV(cmd.Context(), svc, modelimport.Options{
				CSVPath: csvPath,
				DryRun:  dryRun,
				Logger:  logger.Named("import"),
			})
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			if result.ParseErrors > 0 {
				logger.Error("import finished with invalid rows", zap.Int("parse_errors", result.ParseErrors))
				return fmt.Errorf("%d invalid rows", result.ParseErrors)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "models.csv", "path to the models CSV")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and check for duplicates without writing to the database")
	return cmd
}
