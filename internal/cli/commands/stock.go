package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmar008/dealaai/internal/cli/types"
	"github.com/jmar008/dealaai/internal/cli/ui"
)

var (
	stockMake     string
	stockModel    string
	stockMinPrice float64
	stockMaxPrice float64
	stockPage     int
	stockPageSize int
	exportOutput  string
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "browse the vehicle stock",
}

var stockListCmd = &cobra.Command{
	Use:   "list",
	Short: "list vehicles in stock",
	Example: `  # First page of the stock
  $ dealctl stock list

  # Filter by make, page through results
  $ dealctl stock list --make BMW --page 2`,
	RunE: runStockList,
}

var stockGetCmd = &cobra.Command{
	Use:   "get <vin>",
	Short: "show one vehicle by VIN",
	Args:  cobra.ExactArgs(1),
	RunE:  runStockGet,
}

var stockSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "free-text search over the stock",
	Example: `  # Search by any term
  $ dealctl stock search "bmw diesel"

  # Constrain by price band
  $ dealctl stock search suv --min-price 10000 --max-price 30000`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStockSearch,
}

var stockStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "show aggregate stock figures",
	RunE:  runStockStats,
}

var stockExportCmd = &cobra.Command{
	Use:   "export",
	Short: "export the stock as CSV",
	Example: `  # Write the full stock to a file
  $ dealctl stock export -o stock.csv

  # Export one make to stdout
  $ dealctl stock export --make BMW`,
	RunE: runStockExport,
}

func init() {
	for _, cmd := range []*cobra.Command{stockListCmd, stockSearchCmd, stockExportCmd} {
		cmd.Flags().StringVar(&stockMake, "make", "", "filter by make")
		cmd.Flags().StringVar(&stockModel, "model", "", "filter by model")
		cmd.Flags().Float64Var(&stockMinPrice, "min-price", 0, "minimum price")
		cmd.Flags().Float64Var(&stockMaxPrice, "max-price", 0, "maximum price")
	}
	stockListCmd.Flags().IntVar(&stockPage, "page", 1, "page number")
	stockListCmd.Flags().IntVar(&stockPageSize, "page-size", 10, "vehicles per page")
	stockSearchCmd.Flags().IntVar(&stockPage, "page", 1, "page number")
	stockSearchCmd.Flags().IntVar(&stockPageSize, "page-size", 10, "vehicles per page")
	stockExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write CSV to file instead of stdout")

	stockCmd.AddCommand(stockListCmd)
	stockCmd.AddCommand(stockGetCmd)
	stockCmd.AddCommand(stockSearchCmd)
	stockCmd.AddCommand(stockStatsCmd)
	stockCmd.AddCommand(stockExportCmd)

	for _, cmd := range []*cobra.Command{stockCmd, stockListCmd, stockGetCmd, stockSearchCmd, stockStatsCmd, stockExportCmd} {
		cmd.SilenceUsage = true
	}
}

func stockQuery() types.StockQuery {
	return types.StockQuery{
		Make:     stockMake,
		Model:    stockModel,
		MinPrice: stockMinPrice,
		MaxPrice: stockMaxPrice,
		Page:     stockPage,
		PageSize: stockPageSize,
	}
}

func runStockList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	list, err := a.client.ListStock(ctx, stockQuery())
	if err != nil {
		ui.PrintError("failed to list stock: %v", err)
		return fmt.Errorf("stock list failed")
	}

	fmt.Print(ui.RenderVehicleTable(list))
	return nil
}

func runStockGet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	vehicle, err := a.client.GetVehicle(ctx, args[0])
	if err != nil {
		ui.PrintError("failed to get vehicle: %v", err)
		return fmt.Errorf("vehicle lookup failed")
	}

	fmt.Print(ui.RenderVehicleDetail(vehicle))
	return nil
}

func runStockSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	query := stockQuery()
	query.Query = strings.Join(args, " ")

	list, err := a.client.SearchStock(ctx, query)
	if err != nil {
		ui.PrintError("search failed: %v", err)
		return fmt.Errorf("stock search failed")
	}

	fmt.Print(ui.RenderVehicleTable(list))
	return nil
}

func runStockStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	stats, err := a.client.StockStats(ctx)
	if err != nil {
		ui.PrintError("failed to get stats: %v", err)
		return fmt.Errorf("stock stats failed")
	}

	fmt.Print(ui.RenderStockStats(stats))
	return nil
}

func runStockExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	data, err := a.client.ExportStock(ctx, stockQuery())
	if err != nil {
		ui.PrintError("export failed: %v", err)
		return fmt.Errorf("stock export failed")
	}

	if exportOutput == "" {
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	ui.PrintSuccess("Exported stock to %s", exportOutput)
	return nil
}
