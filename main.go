package main

import (
	"context"
	"fmt"
	"log/slog"
	"mycalculator/config"
	"mycalculator/core/evaluator"
	"mycalculator/core/history"
	"mycalculator/service/calculator"
	"mycalculator/ui"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

var (
	envFile   string
	addr      string
	noBrowser bool
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Safe calculator expression engine",
	Long: `Calc evaluates arithmetic expressions typed the way they appear on a
calculator keypad: 2(3), √9+1, 6÷3×2, 2^0.5.

Without a subcommand it starts the web calculator.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web calculator and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive console calculator",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		calc := calculator.NewCalculator(history.NewHistoryManagerWithLimit(cfg.HistoryLimit))
		return ui.NewConsoleInterface(calc, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate one expression and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		result, err := evaluator.Evaluate(strings.Join(args, " "))
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), evaluator.Placeholder)
			return fmt.Errorf("%s: %w", evaluator.KindOf(err), err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to a .env file")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "Listen address (overrides CALC_ADDR)")
	rootCmd.PersistentFlags().BoolVar(&noBrowser, "no-browser", false, "Do not open the browser on start")

	rootCmd.AddCommand(serveCmd, replCmd, evalCmd)
}

func loadConfig() *config.Config {
	var cfg *config.Config
	if envFile != "" {
		cfg = config.Load(envFile)
	} else {
		cfg = config.Load()
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return cfg
}

func runServe(ctx context.Context) error {
	cfg := loadConfig()
	if addr != "" {
		cfg.Addr = addr
	}

	hm := history.NewHistoryManagerWithLimit(cfg.HistoryLimit)
	web := ui.NewWebInterface(cfg, hm)

	calcURL := "http://" + cfg.Addr
	if strings.HasPrefix(cfg.Addr, ":") {
		calcURL = "http://localhost" + cfg.Addr
	}

	if cfg.OpenBrowser && !noBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := open.Run(calcURL); err != nil {
				slog.Warn("could not open browser", "url", calcURL, "error", err)
			}
		}()
	}

	fmt.Printf("Calculator is available at %s\n", calcURL)
	fmt.Println("Press Ctrl+C to exit.")

	return web.Start(ctx, cfg.Addr)
}
