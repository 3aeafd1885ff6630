package main

import (
	"fmt"

	"github.com/jatochnietverkeerd/dd-sub000/internal/finance"
	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Verify persisted finance figures against the calculator",
	Long: `Re-runs the VAT and profit calculations from each record's raw inputs
and compares the result with the persisted derived columns. Drift can appear
after manual database edits or calculator changes.

Without --write the command only reports differences.`,
	Example: `  # Report drift
  dealerctl recompute

  # Report and persist the recomputed figures
  dealerctl recompute --write`,
	RunE: runRecompute,
}

func init() {
	rootCmd.AddCommand(recomputeCmd)

	recomputeCmd.Flags().Bool("write", false, "Persist recomputed figures for drifted records")
}

func runRecompute(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("recompute")
	write, _ := cmd.Flags().GetBool("write")

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	var purchases []model.Purchase
	if err := db.Find(&purchases).Error; err != nil {
		return fmt.Errorf("failed to load purchases: %w", err)
	}

	purchaseTotals := make(map[string]finance.PurchaseTotals, len(purchases))
	drifted := 0

	for _, p := range purchases {
		totals, err := finance.ComputePurchaseTotals(finance.PurchaseInput{
			NetPrice:        p.NetPrice,
			Regime:          finance.VATRegime(p.VATRegime),
			BPM:             p.BPM,
			TransportCost:   p.TransportCost,
			MaintenanceCost: p.MaintenanceCost,
			CleaningCost:    p.CleaningCost,
			GuaranteeCost:   p.GuaranteeCost,
			OtherCosts:      p.OtherCosts,
		})
		if err != nil {
			log.Error().Str("purchase_id", p.ID.String()).Err(err).Msg("purchase no longer computes")
			continue
		}
		purchaseTotals[p.ID.String()] = totals

		if totals.VATAmount.Equal(p.VATAmount) && totals.TotalInclVAT.Equal(p.TotalInclVAT) {
			continue
		}
		drifted++
		log.Warn().
			Str("purchase_id", p.ID.String()).
			Str("stored_vat", p.VATAmount.StringFixed(2)).
			Str("computed_vat", totals.VATAmount.StringFixed(2)).
			Str("stored_total", p.TotalInclVAT.StringFixed(2)).
			Str("computed_total", totals.TotalInclVAT.StringFixed(2)).
			Msg("purchase drift")

		if write {
			p.VATAmount = totals.VATAmount
			p.TotalInclVAT = totals.TotalInclVAT
			if err := db.Save(&p).Error; err != nil {
				return fmt.Errorf("failed to update purchase %s: %w", p.ID, err)
			}
		}
	}

	var sales []model.Sale
	if err := db.Find(&sales).Error; err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}

	for _, s := range sales {
		in := finance.SaleInput{
			NetPrice: s.NetPrice,
			Regime:   finance.VATRegime(s.VATRegime),
			Discount: s.Discount,
		}
		if s.PurchaseID != nil {
			if totals, ok := purchaseTotals[s.PurchaseID.String()]; ok {
				in.Purchase = &totals
			}
		}

		totals, err := finance.ComputeSaleTotals(in)
		if err != nil {
			log.Error().Str("sale_id", s.ID.String()).Err(err).Msg("sale no longer computes")
			continue
		}

		if totals.VATAmount.Equal(s.VATAmount) &&
			totals.GrossPrice.Equal(s.GrossPrice) &&
			totals.FinalPrice.Equal(s.FinalPrice) &&
			decimalPtrEqual(totals.ProfitInclVAT, s.ProfitInclVAT) &&
			decimalPtrEqual(totals.ProfitExclVAT, s.ProfitExclVAT) {
			continue
		}
		drifted++
		log.Warn().
			Str("sale_id", s.ID.String()).
			Str("stored_final", s.FinalPrice.StringFixed(2)).
			Str("computed_final", totals.FinalPrice.StringFixed(2)).
			Msg("sale drift")

		if write {
			s.VATAmount = totals.VATAmount
			s.GrossPrice = totals.GrossPrice
			s.FinalPrice = totals.FinalPrice
			s.ProfitExclVAT = totals.ProfitExclVAT
			s.ProfitInclVAT = totals.ProfitInclVAT
			if err := db.Save(&s).Error; err != nil {
				return fmt.Errorf("failed to update sale %s: %w", s.ID, err)
			}
		}
	}

	fmt.Printf("Checked %d purchases and %d sales, %d drifted", len(purchases), len(sales), drifted)
	if write && drifted > 0 {
		fmt.Print(" (rewritten)")
	}
	fmt.Println()
	return nil
}
