package main

import (
	"context"
	"fmt"
	"os"

	"mortgagesim/internal/app"
	"mortgagesim/internal/calculator"
	"mortgagesim/internal/config"
	"mortgagesim/internal/domain"
	"mortgagesim/internal/logger"
	"mortgagesim/internal/repository"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "mortgagesim",
		Short:         "Compare paying off a mortgage against investing over historical markets",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			files := []string{}
			if envFile != "" {
				files = append(files, envFile)
			}
			loaded, err := config.Load(files...)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("data") {
				cfg.DataPath = loaded.DataPath
			}
			if !flags.Changed("scenario") {
				cfg.ScenarioPath = loaded.ScenarioPath
			}
			if !flags.Changed("concurrency") {
				cfg.Concurrency = loaded.Concurrency
			}
			if !flags.Changed("redis") {
				cfg.RedisAddr = loaded.RedisAddr
			}
			if !flags.Changed("output") {
				cfg.OutputPath = loaded.OutputPath
			}
			if !flags.Changed("verbose") {
				cfg.Verbose = loaded.Verbose
			}
			cfg.Env = loaded.Env
			cfg.CacheTTL = loaded.CacheTTL

			log := logger.NewWithLevel(cfg.Verbose)
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default .env)")
	root.PersistentFlags().StringVar(&cfg.DataPath, "data", "", "market data csv")
	root.PersistentFlags().StringVar(&cfg.ScenarioPath, "scenario", "", "scenario yaml")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "trace every simulated month")

	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Run both strategies for every start month of the scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd.Context(), cfg)
		},
	}
	sweep.Flags().IntVar(&cfg.Concurrency, "concurrency", 1, "simulations run in parallel")
	sweep.Flags().StringVar(&cfg.RedisAddr, "redis", "", "redis address for the result cache")
	sweep.Flags().StringVar(&cfg.OutputPath, "output", "", "write every result to this csv")

	scenario := &cobra.Command{
		Use:   "scenario",
		Short: "Print the effective scenario as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadScenario(cfg.ScenarioPath)
			if err != nil {
				return err
			}
			b, err := config.MarshalScenario(s)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	data := &cobra.Command{
		Use:   "data [YYYY-MM]",
		Short: "Print the market data for one month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := domain.MaxMonthYear
			if len(args) == 1 {
				m, err := domain.ParseMonthYear(args[0])
				if err != nil {
					return err
				}
				month = m
			}
			return printMarketData(cmd, cfg.DataPath, month)
		},
	}

	root.AddCommand(sweep, scenario, data)
	return root
}

func runSweep(ctx context.Context, cfg *config.Config) error {
	log := logger.FromContext(ctx)

	scenario, err := config.LoadScenario(cfg.ScenarioPath)
	if err != nil {
		return err
	}
	log.Infof("scenario:\n%s", scenario)

	marketData, err := repository.LoadMarketDataFile(cfg.DataPath)
	if err != nil {
		return err
	}

	var cache repository.ResultCacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisResultCache(cfg.RedisAddr, cfg.CacheTTL)
	}

	sweep, err := app.NewSimulator(marketData, cache, cfg.Concurrency).Sweep(ctx, scenario)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	c := sweep.Comparison
	log.Infof(
		"invest won %d of %d start months, avoid mortgage won %d, %d ties; average invest advantage $%s",
		c.InvestWins, c.Compared, c.AvoidMortgageWins, c.Ties, c.AverageInvestAdvantage.StringFixed(0),
	)
	for _, summary := range []*calculator.StrategySummary{sweep.AvoidMortgageSummary, sweep.InvestSummary} {
		log.Infof(
			"%s: median net worth $%s, %d net losses, financially secure %s%% of months",
			summary.Strategy.Name(),
			summary.MedianNetWorth.StringFixed(0),
			summary.NetLosses,
			summary.SecurePercentage.Shift(2).StringFixed(1),
		)
	}

	if profile, err := sweep.Profile.ToJsonBytes(); err == nil {
		log.Debugf("profile: %s", string(profile))
	}

	if cfg.OutputPath != "" {
		if err := repository.WriteResultsFile(cfg.OutputPath, sweep.AvoidMortgage, sweep.Invest); err != nil {
			return err
		}
		log.Infof("wrote results to %s", cfg.OutputPath)
	}
	return nil
}

func printMarketData(cmd *cobra.Command, path string, month domain.MonthYear) error {
	marketData, err := repository.LoadMarketDataFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, month)
	row := func(name string, get func() (string, error)) {
		v, err := get()
		if err != nil {
			v = "n/a"
		}
		fmt.Fprintf(out, "  %-22s %s\n", name, v)
	}
	rate := func(term domain.MortgageTerm) func() (string, error) {
		return func() (string, error) {
			v, err := marketData.MortgageRate(month, term)
			return v.String(), err
		}
	}
	row("15 year mortgage rate", rate(domain.MortgageTerm_FifteenYear))
	row("30 year mortgage rate", rate(domain.MortgageTerm_ThirtyYear))
	row("1 year treasury rate", func() (string, error) {
		v, err := marketData.TreasuryRate(month)
		return v.String(), err
	})
	row("S&P 500 price", func() (string, error) {
		v, err := marketData.Sp500Price(month)
		return v.StringFixed(2), err
	})
	row("S&P 500 dividend yield", func() (string, error) {
		v, err := marketData.Sp500Dividend(month)
		return v.String(), err
	})
	row("inflation", func() (string, error) {
		v, err := marketData.InflationRate(month)
		return v.String(), err
	})
	return nil
}
