package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/price-bot/internal/repo/cache"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/fetcher"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/memory"
	"github.com/nguyentranbao-ct/price-bot/internal/retailer"
	"github.com/nguyentranbao-ct/price-bot/internal/usecase"
)

var checkCmd = &cobra.Command{
	Use:   "check <product-url>",
	Short: "Fetch one product page and print its name and price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}

		uc, err := usecase.NewCommandUsecase(
			conf,
			memory.NewWatchlistRepository(),
			fetcher.NewPageFetcher(conf, cache.NewNopCache()),
			retailer.NewClassifier(conf.Scraper.StrictHost),
			retailer.NewExtractor(),
			usecase.NewIDAllocator(),
		)
		if err != nil {
			return err
		}

		snap, err := uc.Inspect(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("check %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Website: %s\n", snap.Product.Retailer)
		fmt.Fprintf(out, "Product name: %s\n", snap.Details.Name)
		fmt.Fprintf(out, "Price: %s\n", snap.Details.Price)
		fmt.Fprintf(out, "Link: %s\n", snap.Product.URL())
		return nil
	},
}
