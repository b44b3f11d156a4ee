package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-pos/internal/common"
	"github.com/noah-isme/toko-pos/internal/config"
	"github.com/noah-isme/toko-pos/internal/inventory"
	"github.com/noah-isme/toko-pos/internal/obs"
)

const usage = `usage: invoice [-coupon NAME] [-list] [-metrics] "product[=qty]" ...

Seeds an inventory from $CATALOG_PATH, adds the products to a cart and prints the invoice.`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := obs.NewLoggerTo(os.Stderr, cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()
	os.Exit(run(cfg, logger, os.Args[1:], os.Stdout))
}

func run(cfg *config.Config, logger zerolog.Logger, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("invoice", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	couponName := fs.String("coupon", "", "coupon to apply")
	list := fs.Bool("list", false, "print the catalog instead of an invoice")
	dumpMetrics := fs.Bool("metrics", false, "print pricing metrics after the invoice")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stdout, usage)
		return 2
	}

	registry := prometheus.NewRegistry()
	metrics := obs.NewPricingMetrics(cfg.MetricsNamespace, registry)
	inv := inventory.New(logger, metrics)
	if err := inv.LoadFile(cfg.CatalogPath); err != nil {
		event := logger.Error().Err(err).Str("catalog", cfg.CatalogPath)
		var appErr *common.AppError
		if errors.As(err, &appErr) && appErr.Details != nil {
			event = event.Interface("details", appErr.Details)
		}
		event.Msg("seed catalog")
		return 1
	}
	logger.Debug().Stringer("inventory", inv).Msg("catalog_ready")

	if *list {
		printCatalog(stdout, inv)
		return 0
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stdout, usage)
		return 2
	}

	c := inv.NewCart()
	for _, arg := range fs.Args() {
		name, qty, err := parseLine(arg)
		if err != nil {
			logger.Error().Err(err).Str("arg", arg).Msg("parse order line")
			return 2
		}
		if err := c.Add(name, qty); err != nil {
			logger.Error().Err(err).Str("code", common.CodeOf(err)).Str("product", name).Int("qty", qty).Msg("add to cart")
			return 1
		}
	}
	if *couponName != "" {
		c.Use(*couponName)
	}

	fmt.Fprint(stdout, c.Invoice())
	logger.Info().Str("cart_id", c.ID().String()).Str("total", c.Total().String()).Msg("invoice_printed")

	if *dumpMetrics {
		if err := writeMetrics(stdout, registry); err != nil {
			logger.Error().Err(err).Msg("write metrics")
			return 1
		}
	}
	return 0
}

// parseLine reads "name=qty"; a bare name means one unit. The last '=' splits, so names may contain '='.
func parseLine(arg string) (string, int, error) {
	idx := strings.LastIndex(arg, "=")
	if idx < 0 {
		return arg, 1, nil
	}
	name := arg[:idx]
	qty, err := strconv.Atoi(strings.TrimSpace(arg[idx+1:]))
	if err != nil {
		return "", 0, fmt.Errorf("quantity for %q: %w", name, err)
	}
	if name == "" {
		return "", 0, errors.New("product name is empty")
	}
	return name, qty, nil
}

func printCatalog(w io.Writer, inv *inventory.Inventory) {
	for _, p := range inv.Products() {
		line := fmt.Sprintf("%-40s %8s", p.Name(), p.Price().String())
		if text := p.Promotion().InvoiceText(); text != "" {
			line += "  " + text
		}
		fmt.Fprintln(w, line)
	}
	for _, c := range inv.Coupons() {
		fmt.Fprintf(w, "coupon %s: %s\n", c.Name(), c.Description())
	}
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
