package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ShopFront/internal/cart"
	"ShopFront/internal/storefront"
	"ShopFront/pkg/config"
	"ShopFront/pkg/kit"
)

type options struct {
	apiURL  string
	dataDir string
}

func main() {
	config.LoadDotEnv()
	cfg := config.LoadShop()

	log := kit.NewLogger("shop", cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, cancel := kit.SignalContext(context.Background())
	defer cancel()

	if err := newRootCmd(cfg, log).ExecuteContext(ctx); err != nil {
		// cart failures were already shown by the renderer
		if !errors.Is(err, cart.ErrStorage) && !errors.Is(err, cart.ErrInvalidQuantity) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Shop, log *zap.Logger) *cobra.Command {
	opts := &options{apiURL: cfg.APIURL, dataDir: cfg.DataDir}

	root := &cobra.Command{
		Use:           "shop",
		Short:         "Browse the catalog and manage a local shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.app(cmd, log)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), cmd.InOrStdin())
		},
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", opts.apiURL, "catalog service base URL")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", opts.dataDir, "directory holding the local cart")

	root.AddCommand(
		eventCmd(opts, log, "products", "List products", cobra.NoArgs, func([]string) (storefront.Event, error) {
			return storefront.Event{Kind: storefront.ShowProducts}, nil
		}),
		eventCmd(opts, log, "show <id>", "Show product details", cobra.ExactArgs(1), func(args []string) (storefront.Event, error) {
			return storefront.Event{Kind: storefront.ShowProduct, ID: args[0]}, nil
		}),
		eventCmd(opts, log, "add <id> [qty]", "Add a product to the cart", cobra.RangeArgs(1, 2), func(args []string) (storefront.Event, error) {
			qty := 1
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 1 {
					return storefront.Event{}, fmt.Errorf("quantity must be a positive integer, got %q", args[1])
				}
				qty = n
			}
			return storefront.Event{Kind: storefront.AddToCart, ID: args[0], Quantity: qty}, nil
		}),
		eventCmd(opts, log, "cart", "Show the cart", cobra.NoArgs, func([]string) (storefront.Event, error) {
			return storefront.Event{Kind: storefront.ShowCart}, nil
		}),
		eventCmd(opts, log, "inc <id>", "Increase a cart line by one", cobra.ExactArgs(1), func(args []string) (storefront.Event, error) {
			return storefront.Event{Kind: storefront.IncrementLine, ID: args[0]}, nil
		}),
		eventCmd(opts, log, "dec <id>", "Decrease a cart line by one", cobra.ExactArgs(1), func(args []string) (storefront.Event, error) {
			return storefront.Event{Kind: storefront.DecrementLine, ID: args[0]}, nil
		}),
		eventCmd(opts, log, "remove <id>", "Remove a cart line", cobra.ExactArgs(1), func(args []string) (storefront.Event, error) {
			return storefront.Event{Kind: storefront.RemoveLine, ID: args[0]}, nil
		}),
		eventCmd(opts, log, "checkout", "Check out (clears the cart)", cobra.NoArgs, func([]string) (storefront.Event, error) {
			return storefront.Event{Kind: storefront.Checkout}, nil
		}),
	)

	return root
}

// eventCmd builds a one-shot subcommand that handles a single event.
func eventCmd(opts *options, log *zap.Logger, use, short string, args cobra.PositionalArgs,
	build func([]string) (storefront.Event, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := build(args)
			if err != nil {
				return err
			}
			app, err := opts.app(cmd, log)
			if err != nil {
				return err
			}
			if err := app.Start(); err != nil {
				return err
			}
			return app.Handle(cmd.Context(), ev)
		},
	}
}

func (o *options) app(cmd *cobra.Command, log *zap.Logger) (*storefront.App, error) {
	dir := o.dataDir
	if dir == "" {
		d, err := cart.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("locate cart directory (set --data-dir): %w", err)
		}
		dir = d
	}

	m := cart.NewManager(cart.NewFileStorage(dir), log)
	view := storefront.NewTextRenderer(cmd.OutOrStdout())
	return storefront.NewApp(storefront.NewCatalogClient(o.apiURL), m, view, log), nil
}
