package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"cooling_control/internal/service"
	"cooling_control/internal/simulation"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate SCENARIO",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			configDir, _ := cmd.Flags().GetString("config")

			limits, err := loadLimits(configDir)
			if err != nil {
				return err
			}
			sc, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			_, verr := service.PrepareConfig(sc.SimulationConfig, limits)

			if jsonOut {
				res := map[string]any{"valid": verr == nil}
				var cfgErr *simulation.ConfigError
				if errors.As(verr, &cfgErr) {
					res["field"] = cfgErr.Field
					res["reason"] = cfgErr.Reason
				}
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(res); err != nil {
					return err
				}
				return verr
			}
			if verr != nil {
				return verr
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return err
		},
	}
}
