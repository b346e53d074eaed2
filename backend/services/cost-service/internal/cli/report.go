package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energytrack/backend/services/cost-service/internal/config"
	"energytrack/backend/services/cost-service/internal/db"
	"energytrack/backend/services/cost-service/internal/models"
	"energytrack/backend/services/cost-service/internal/repository"
	"energytrack/backend/services/cost-service/internal/service"
)

func newReportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report <daily|weekly|monthly> <user-id>",
		Short: "Aggregate a user's stored costs for the current bucket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.validateOutput(); err != nil {
				return err
			}
			period, err := models.ParsePeriod(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			location, err := cfg.Location()
			if err != nil {
				return err
			}
			if root.tariffFile == "" {
				root.tariffFile = cfg.Tariff.File
			}
			tariffs, err := root.tariffs()
			if err != nil {
				return err
			}
			logger, err := root.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			sqlDB, err := db.NewPostgres(cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			defer sqlDB.Close()

			reports := service.NewReportService(repository.NewCostRepository(sqlDB), tariffs.Current().Currency, location, logger)
			report, err := reports.Report(cmd.Context(), args[1], period)
			if err != nil {
				logger.Error("report failed", zap.Error(err))
				return err
			}
			return writeReport(cmd, root.output, report)
		},
	}
}

func writeReport(cmd *cobra.Command, output string, report *models.Report) error {
	out := cmd.OutOrStdout()
	if output == "json" {
		return printJSON(out, report)
	}

	fmt.Fprintf(out, "%s report for %s: %s to %s\n\n", report.Period, report.UserID,
		report.BucketStart.Format("2006-01-02"), report.BucketEnd.Format("2006-01-02"))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tRECORDS\tTOTAL")
	for _, t := range report.Totals {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", t.EnergyType, t.Count, t.TotalCost.StringFixed(2))
	}
	fmt.Fprintf(tw, "net\t\t%s %s\n", report.NetTotal.StringFixed(2), report.Currency)
	return tw.Flush()
}
