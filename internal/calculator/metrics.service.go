package calculator

import (
	"fmt"

	"mortgagesim/internal/domain"
	"mortgagesim/internal/util"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// StrategySummary aggregates one strategy's runs. Net worth statistics only
// cover successful runs.
type StrategySummary struct {
	Strategy domain.Strategy

	Runs      int
	Successes int
	Failures  int
	Invalid   int
	Errors    int
	NetLosses int

	AverageNetWorth      decimal.Decimal
	MedianNetWorth       decimal.Decimal
	StdevNetWorth        decimal.Decimal
	TenthPercentileWorth decimal.Decimal
	MinNetWorth          decimal.Decimal
	MaxNetWorth          decimal.Decimal
	AverageNetGain       decimal.Decimal
	MedianNetGain        decimal.Decimal

	Best  *domain.Result
	Worst *domain.Result

	// fraction of simulated months, across successful runs, in which the
	// mortgage could have been paid off
	SecurePercentage             decimal.Decimal
	AverageMortgageRate          decimal.Decimal
	AverageEffectiveMortgageRate decimal.Decimal

	// every run that did not succeed, in start order
	Unsuccessful []domain.Result
}

func SummarizeResults(results *domain.Results) (*StrategySummary, error) {
	if results == nil {
		return nil, fmt.Errorf("cannot summarize nil results")
	}

	summary := &StrategySummary{
		Strategy:     results.Strategy,
		Unsuccessful: []domain.Result{},
	}

	netWorths := []float64{}
	netGains := []float64{}
	rates := []float64{}
	effectiveRates := []float64{}
	months, secureMonths := 0, 0

	for _, r := range results.Items() {
		r := r
		summary.Runs++
		switch r.Outcome {
		case domain.Outcome_Success:
			summary.Successes++
		case domain.Outcome_Failed:
			summary.Failures++
		case domain.Outcome_Invalid:
			summary.Invalid++
		default:
			summary.Errors++
		}
		if r.Outcome != domain.Outcome_Success {
			summary.Unsuccessful = append(summary.Unsuccessful, r)
			continue
		}

		netWorths = append(netWorths, r.NetWorth.InexactFloat64())
		netGains = append(netGains, r.NetGain.InexactFloat64())
		if r.NetGain.IsNegative() {
			summary.NetLosses++
		}
		if r.AverageMortgageRate.IsPositive() {
			rates = append(rates, r.AverageMortgageRate.InexactFloat64())
			effectiveRates = append(effectiveRates, r.EffectiveMortgageRate.InexactFloat64())
		}
		months += r.Months
		secureMonths += r.SecureMonths

		// ties keep the earliest start month
		if summary.Best == nil || r.NetWorth.GreaterThan(summary.Best.NetWorth) {
			summary.Best = &r
		}
		if summary.Worst == nil || r.NetWorth.LessThan(summary.Worst.NetWorth) {
			summary.Worst = &r
		}
	}

	if len(netWorths) == 0 {
		return summary, nil
	}

	var err error
	if summary.AverageNetWorth, err = dollars(stats.Mean, netWorths); err != nil {
		return nil, err
	}
	if summary.MedianNetWorth, err = dollars(stats.Median, netWorths); err != nil {
		return nil, err
	}
	if summary.MinNetWorth, err = dollars(stats.Min, netWorths); err != nil {
		return nil, err
	}
	if summary.MaxNetWorth, err = dollars(stats.Max, netWorths); err != nil {
		return nil, err
	}
	if summary.AverageNetGain, err = dollars(stats.Mean, netGains); err != nil {
		return nil, err
	}
	if summary.MedianNetGain, err = dollars(stats.Median, netGains); err != nil {
		return nil, err
	}
	// nearest rank is defined for any non-empty sample, small sweeps included
	if summary.TenthPercentileWorth, err = dollars(func(d stats.Float64Data) (float64, error) {
		return stats.PercentileNearestRank(d, 10)
	}, netWorths); err != nil {
		return nil, err
	}
	if len(netWorths) > 1 {
		if summary.StdevNetWorth, err = dollars(stats.StandardDeviationSample, netWorths); err != nil {
			return nil, err
		}
	}

	if len(rates) > 0 {
		mean, err := stats.Mean(rates)
		if err != nil {
			return nil, err
		}
		summary.AverageMortgageRate = util.ToPercent(decimal.NewFromFloat(mean))
		mean, err = stats.Mean(effectiveRates)
		if err != nil {
			return nil, err
		}
		summary.AverageEffectiveMortgageRate = util.ToPercent(decimal.NewFromFloat(mean))
	}

	if months > 0 {
		summary.SecurePercentage = util.ToPercent(
			decimal.NewFromInt(int64(secureMonths)).Div(decimal.NewFromInt(int64(months))),
		)
	}

	return summary, nil
}

func dollars(fn func(stats.Float64Data) (float64, error), data []float64) (decimal.Decimal, error) {
	v, err := fn(data)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to calculate statistic: %w", err)
	}
	return util.ToDollarCents(decimal.NewFromFloat(v)), nil
}

// StrategyComparison pits Invest against AvoidMortgage for every start
// month where both succeeded. Higher net worth wins; equal net worth is a
// tie.
type StrategyComparison struct {
	Compared          int
	InvestWins        int
	AvoidMortgageWins int
	Ties              int
	// mean of invest minus avoid-mortgage net worth
	AverageInvestAdvantage decimal.Decimal
	MaxInvestAdvantage     decimal.Decimal
	MaxInvestDisadvantage  decimal.Decimal
}

func CompareStrategies(avoidMortgage, invest *domain.Results) (*StrategyComparison, error) {
	if avoidMortgage == nil || invest == nil {
		return nil, fmt.Errorf("both strategies are required for comparison")
	}

	out := &StrategyComparison{}
	advantages := []float64{}
	for _, a := range avoidMortgage.Items() {
		i, ok := invest.Get(a.Start)
		if !ok || a.Outcome != domain.Outcome_Success || i.Outcome != domain.Outcome_Success {
			continue
		}

		out.Compared++
		diff := i.NetWorth.Sub(a.NetWorth)
		switch diff.Sign() {
		case 1:
			out.InvestWins++
		case -1:
			out.AvoidMortgageWins++
		default:
			out.Ties++
		}
		if diff.GreaterThan(out.MaxInvestAdvantage) {
			out.MaxInvestAdvantage = diff
		}
		if diff.LessThan(out.MaxInvestDisadvantage) {
			out.MaxInvestDisadvantage = diff
		}
		advantages = append(advantages, diff.InexactFloat64())
	}

	if len(advantages) > 0 {
		avg, err := dollars(stats.Mean, advantages)
		if err != nil {
			return nil, err
		}
		out.AverageInvestAdvantage = avg
	}
	return out, nil
}
