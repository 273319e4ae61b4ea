package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SscSPs/shopledger/internal/core/services"
	"github.com/SscSPs/shopledger/internal/dto"
	"github.com/SscSPs/shopledger/internal/utils/accounting"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportSummaryCmd)
	reportCmd.AddCommand(reportAgingCmd)

	reportAgingCmd.Flags().StringP("boundaries", "b", "", "Comma separated day boundaries (default from AGING_BOUNDARIES)")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print portfolio reports as JSON",
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals of outstanding and advance balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.store.Close()

		reporting := services.NewReportingService(a.store, a.serviceOptions(nil)...)
		summary, err := reporting.GetLedgerSummary(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build ledger summary: %w", err)
		}
		return printJSON(dto.ToLedgerSummaryResponse(summary))
	},
}

var reportAgingCmd = &cobra.Command{
	Use:   "aging",
	Short: "Aging buckets of every customer with a positive balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		var boundaries []int
		if raw, _ := cmd.Flags().GetString("boundaries"); raw != "" {
			parsed, err := accounting.ParseBoundaries(raw)
			if err != nil {
				return err
			}
			boundaries = parsed
		}

		a, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.store.Close()

		reporting := services.NewReportingService(a.store, a.serviceOptions(nil)...)
		rows, err := reporting.GetCustomerAging(cmd.Context(), boundaries)
		if err != nil {
			return fmt.Errorf("failed to build aging report: %w", err)
		}
		return printJSON(dto.ToAgingResponse(rows))
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
