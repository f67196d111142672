package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanrota/vanrota/app"
	"github.com/vanrota/vanrota/config"
)

var (
	tariffPax     int
	tariffSaleRef string
)

var tariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Tariff table helpers",
}

var tariffResolveCmd = &cobra.Command{
	Use:   "resolve <description>",
	Short: "Resolve the vehicle class and price for one service",
	Args:  cobra.ExactArgs(1),
	RunE:  runTariffResolve,
}

func init() {
	rootCmd.AddCommand(tariffCmd)
	tariffCmd.AddCommand(tariffResolveCmd)
	tariffResolveCmd.Flags().IntVarP(&tariffPax, "pax", "p", 1, "passenger count")
	tariffResolveCmd.Flags().StringVarP(&tariffSaleRef, "sale-ref", "s", "", "sale reference")
}

func runTariffResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	res := svc.Resolve(args[0], tariffPax, tariffSaleRef)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "vehicle: %s\nprice: %.2f\nsource: %s\n", res.Vehicle, res.Price, res.Source)
	if res.MatchedKey != "" {
		fmt.Fprintf(out, "matched: %q (similarity %.2f)\n", res.MatchedKey, res.Similarity)
	}
	return nil
}
