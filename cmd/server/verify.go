package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agromonitor/config"
	"agromonitor/pkg/rules"
	"agromonitor/pkg/verify/service"
)

func verifyCommand(cfg *config.AppConfig) *cobra.Command {
	var firmID, premiseID uint

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run one verification pass for a firm and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if firmID == 0 {
				return fmt.Errorf("--firm is required")
			}
			a, err := newApp(*cfg)
			if err != nil {
				return err
			}
			defer a.close()

			var premise *uint
			if cmd.Flags().Changed("premise") {
				premise = &premiseID
			}
			rep, err := a.verifier.VerifyAll(service.WithTrigger(cmd.Context(), "cli"), firmID, premise)
			if rep != nil {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if eerr := enc.Encode(rep); eerr != nil {
					return eerr
				}
			}
			if err != nil {
				return err
			}
			if rep.Incomplete {
				return fmt.Errorf("verification incomplete: %d errors", len(rep.Errors))
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&firmID, "firm", 0, "firm to verify")
	cmd.Flags().UintVar(&premiseID, "premise", 0, "limit lots and rainfall to one premise")
	return cmd
}

func rulesCommand(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the rule catalog with the effective thresholds",
		RunE: func(cmd *cobra.Command, args []string) error {
			th, err := rules.LoadThresholds(cfg.ThresholdsFile)
			if err != nil {
				return err
			}
			reg, err := rules.NewRegistry(th)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"rules":      reg.Catalog(),
				"thresholds": reg.Thresholds(),
			})
		},
	}
}
