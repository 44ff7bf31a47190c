// Command transportops is a thin command-line adapter over the domain
// services: bulk export/import of transport records and revenue
// reporting. All business rules live in internal/transport.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/St4n1l/TransportCompany/internal/transport/controller"
	"github.com/St4n1l/TransportCompany/internal/transport/db"
	"github.com/St4n1l/TransportCompany/internal/transport/events"
	"github.com/St4n1l/TransportCompany/internal/transport/fileio"
	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config struct for YAML configuration
type Config struct {
	DBHost       string   `yaml:"DB_HOST"`
	DBPort       int      `yaml:"DB_PORT"`
	DBUser       string   `yaml:"DB_USER"`
	DBPassword   string   `yaml:"DB_PASSWORD"`
	DBName       string   `yaml:"DB_NAME"`
	DBSSLMode    string   `yaml:"DB_SSLMODE"`
	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	Topic        string   `yaml:"TOPIC"`
}

type app struct {
	logger     *zap.Logger
	repo       *db.Repository
	producer   *events.Producer
	companies  *controller.CompanyService
	transports *controller.TransportService
	reports    *controller.ReportService
	codec      *fileio.Codec
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "transportops",
		Short:        "Transport company operations: bulk transport export/import and revenue reports",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to YAML configuration")

	cmd.AddCommand(newExportCmd(&configPath))
	cmd.AddCommand(newImportCmd(&configPath))
	cmd.AddCommand(newReportCmd(&configPath))
	return cmd
}

func newExportCmd(configPath *string) *cobra.Command {
	var file string
	var companyID uint

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transports to a pipe-delimited file",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := context.Background()
			transports, err := a.listTransports(ctx, companyID)
			if err != nil {
				return err
			}
			if err := a.codec.Save(transports, file); err != nil {
				return err
			}
			fmt.Printf("Exported transports: %d\n", len(transports))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "destination file path")
	cmd.Flags().UintVar(&companyID, "company", 0, "limit to one company id")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newImportCmd(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transports from a pipe-delimited file",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			rows, err := a.codec.Load(file)
			if err != nil {
				return err
			}
			imported := a.transports.ImportRows(context.Background(), rows)
			fmt.Printf("Imported transports: %d\n", imported)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "source file path")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newReportCmd(configPath *string) *cobra.Command {
	var companyID uint

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print transport counts and revenue totals",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := context.Background()
			if companyID == 0 {
				count, err := a.reports.GetTotalTransportCount(ctx)
				if err != nil {
					return err
				}
				revenue, err := a.reports.GetTotalRevenue(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Total number of transports: %d\n", count)
				fmt.Printf("Total revenue from all transports: %s\n", revenue)
				return nil
			}

			company, err := a.companies.GetCompanyByID(ctx, companyID)
			if err != nil {
				return err
			}
			count, err := a.reports.GetTotalTransportCountByCompany(ctx, companyID)
			if err != nil {
				return err
			}
			revenue, err := a.reports.GetTotalRevenueByCompany(ctx, companyID)
			if err != nil {
				return err
			}
			fmt.Printf("Company: %s\n", company.Name)
			fmt.Printf("Transports: %d\n", count)
			fmt.Printf("Revenue: %s\n", revenue)

			counts, err := a.reports.GetDriverTransportCounts(ctx, companyID)
			if err != nil {
				return err
			}
			revenues, err := a.reports.GetDriverRevenues(ctx, companyID)
			if err != nil {
				return err
			}
			fmt.Println("\nDriver Transport Counts:")
			for _, row := range counts {
				fmt.Printf("%s (ID: %d): %d transports\n", row.Driver.FullName(), row.Driver.ID, row.Count)
			}
			fmt.Println("\nDriver Revenues:")
			for _, row := range revenues {
				fmt.Printf("%s (ID: %d): %s\n", row.Driver.FullName(), row.Driver.ID, row.Revenue)
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&companyID, "company", 0, "company id to report on (0 for global totals)")
	return cmd
}

func setup(configPath string) (*app, error) {
	logger := initLogger()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	repo, err := db.NewRepository(&db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
		if err != nil {
			logger.Warn("event producer unavailable, continuing without events", zap.Error(err))
			producer = nil
		}
	}

	a := &app{
		logger:   logger,
		repo:     repo,
		producer: producer,
		codec:    fileio.NewCodec(logger),
	}
	if producer != nil {
		a.companies = controller.NewCompanyService(repo, producer, logger)
		a.transports = controller.NewTransportService(repo, producer, logger)
	} else {
		a.companies = controller.NewCompanyService(repo, nil, logger)
		a.transports = controller.NewTransportService(repo, nil, logger)
	}
	a.reports = controller.NewReportService(repo, logger)
	return a, nil
}

func (a *app) listTransports(ctx context.Context, companyID uint) ([]models.Transport, error) {
	if companyID == 0 {
		return a.transports.GetAllTransports(ctx)
	}
	return a.transports.GetTransportsByCompanyID(ctx, companyID)
}

func (a *app) close() {
	if a.producer != nil {
		a.producer.Close()
	}
	if err := a.repo.Close(); err != nil {
		a.logger.Error("failed to close database", zap.Error(err))
	}
	if err := a.logger.Sync(); err != nil {
		a.logger.Error("failed to sync logger", zap.Error(err))
	}
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

func loadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
