// Package cli implements costctl, the operator command line for the cost service.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energytrack/backend/libs/logging"
	"energytrack/backend/services/cost-service/internal/service"
)

type rootOptions struct {
	tariffFile string
	logLevel   string
	output     string
}

// NewRootCmd builds the costctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "costctl",
		Short: "Price energy usage and inspect stored costs",
		Long: `costctl prices usage offline against a tariff file and runs
reports and schema migrations against the cost service database.

Examples:
  costctl quote --type electricity --wattage 1000 --hours 5
  costctl pricing --tariff ./tariff.yaml
  costctl report monthly user-42
  costctl migrate up`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.tariffFile, "tariff", "", "tariff YAML file (built-in tariff when empty)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text or json")

	cmd.AddCommand(newQuoteCmd(opts))
	cmd.AddCommand(newPricingCmd(opts))
	cmd.AddCommand(newReportCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	return cmd
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	return logging.NewLoggerWithLevel("costctl", o.logLevel)
}

func (o *rootOptions) tariffs() (*service.TariffService, error) {
	return service.LoadTariffService(o.tariffFile)
}

func (o *rootOptions) validateOutput() error {
	switch o.output {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
