package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mortgagesim/internal/domain"
	"mortgagesim/internal/logger"
	"mortgagesim/internal/repository"
	"mortgagesim/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type simulationState int

const (
	stateUninitialized simulationState = iota
	stateInitialized
	stateRunning
	stateClosed
)

// Simulation is one run of one strategy from one start month. It owns all
// of the run's financial state and is discarded once Run returns.
type Simulation struct {
	Scenario   domain.Scenario
	Strategy   domain.Strategy
	MarketData repository.MarketDataRepository

	log   *zap.SugaredLogger
	state simulationState

	homeValue     decimal.Decimal
	cash          decimal.Decimal
	contributions decimal.Decimal
	mortgage      *domain.Mortgage

	currentTaxes  *domain.Taxes
	previousTaxes *domain.Taxes

	// both in purchase order
	bonds  []*domain.BondLot
	stocks []*domain.StockLot

	monthsUntilRebalance int
	monthlyIncome        decimal.Decimal
	extraPayment         decimal.Decimal

	months          int
	secureMonths    int
	firstSecure     *domain.MonthYear
	mortgageMonths  int
	mortgageRateSum decimal.Decimal
}

func NewSimulation(scenario domain.Scenario, strategy domain.Strategy, marketData repository.MarketDataRepository) *Simulation {
	return &Simulation{
		Scenario:        scenario,
		Strategy:        strategy,
		MarketData:      marketData,
		log:             zap.NewNop().Sugar(),
		cash:            decimal.Zero,
		contributions:   decimal.Zero,
		currentTaxes:    domain.NewTaxes(),
		bonds:           []*domain.BondLot{},
		stocks:          []*domain.StockLot{},
		mortgageRateSum: decimal.Zero,
	}
}

// Run simulates from start for the scenario's number of years. Success,
// Failed and Invalid runs come back as a Result with a nil error. A non-nil
// error is a modeling defect; the Result then carries Outcome_Error.
func (s *Simulation) Run(ctx context.Context, start domain.MonthYear) (domain.Result, error) {
	s.log = logger.FromContext(ctx)
	result := domain.Result{
		Start:    start,
		Strategy: s.Strategy,
	}
	if s.state != stateUninitialized {
		err := fmt.Errorf("%w: run called twice", domain.ErrSimulationState)
		result.Outcome = domain.Outcome_Error
		result.Error = err.Error()
		return result, err
	}

	end, err := s.run(start)
	s.state = stateClosed
	return s.classify(result, end, err)
}

func (s *Simulation) run(start domain.MonthYear) (domain.MonthYear, error) {
	s.log.Debugf("***** %s %s simulation *****", start, s.Strategy.Name())

	now := domain.Constrain(start)
	if err := s.initialize(now); err != nil {
		return now, err
	}

	s.state = stateRunning
	end := domain.Constrain(now.AddYears(s.Scenario.SimulationYears))
	for now.Before(end) {
		s.log.Debugf("***** %s", now)
		if err := s.simulate(now); err != nil {
			return now, err
		}
		if err := s.trackFinancialSecurity(now); err != nil {
			return now, err
		}
		s.months++
		s.traceOverview(now)
		now = now.AddMonths(1)
	}

	s.log.Debugf("***** %s: simulation ended", now)
	if err := s.closeBooks(now); err != nil {
		return now, err
	}
	return now, nil
}

func (s *Simulation) classify(result domain.Result, end domain.MonthYear, err error) (domain.Result, error) {
	result.Months = s.months
	result.SecureMonths = s.secureMonths
	result.FirstSecure = s.firstSecure
	result.AverageMortgageRate, result.EffectiveMortgageRate = s.averageMortgageRates()

	failed := &domain.FailedError{}
	invalid := &domain.InvalidError{}
	switch {
	case err == nil:
	case errors.As(err, &failed):
		when := failed.When
		result.Outcome = domain.Outcome_Failed
		result.FailedAt = &when
		result.Error = failed.Reason
		result.Status = s.Status(when)
		s.log.Infof("=== simulation %s failed %s: %s ===", result.Start, when, failed.Reason)
		return result, nil
	case errors.As(err, &invalid):
		result.Outcome = domain.Outcome_Invalid
		result.Error = invalid.Reason
		s.log.Infof("=== simulation %s invalid: %s ===", result.Start, invalid.Reason)
		return result, nil
	default:
		result.Outcome = domain.Outcome_Error
		result.Error = err.Error()
		result.Status = s.Status(end)
		s.log.Errorf("=== simulation %s error: %s ===", result.Start, err.Error())
		return result, err
	}

	netWorth, err := s.netWorth(end)
	if err != nil {
		result.Outcome = domain.Outcome_Error
		result.Error = err.Error()
		return result, err
	}
	if s.Scenario.InflationAdjust {
		netWorth, err = s.MarketData.InflationAdjust(netWorth, end, domain.Baseline)
		if err != nil {
			result.Outcome = domain.Outcome_Error
			result.Error = err.Error()
			return result, err
		}
		netWorth = util.ToDollarCents(netWorth)
	}

	result.Outcome = domain.Outcome_Success
	result.NetWorth = netWorth
	result.Contributions = util.ToDollarCents(s.contributions)
	result.NetGain = netWorth.Sub(result.Contributions)
	s.log.Debug(s.Status(end))
	s.log.Infof(
		"%s %s simulation succeeded with net worth of $%s including a gain of $%s on $%s committed",
		result.Start,
		s.Strategy.Name(),
		result.NetWorth.StringFixed(0),
		result.NetGain.StringFixed(0),
		result.Contributions.StringFixed(0),
	)
	return result, nil
}

func (s *Simulation) initialize(start domain.MonthYear) error {
	if s.state != stateUninitialized {
		return fmt.Errorf("%w: initialize called twice", domain.ErrSimulationState)
	}
	s.log.Debug("starting simulation")

	s.homeValue = s.Scenario.HomeValue
	s.cash = s.Scenario.StartingCash
	s.extraPayment = s.Scenario.ExtraPayment
	if s.Scenario.InflationAdjust {
		var err error
		if s.homeValue, err = s.inflate(s.homeValue, start); err != nil {
			return err
		}
		if s.cash, err = s.inflate(s.cash, start); err != nil {
			return err
		}
		if s.extraPayment, err = s.inflate(s.extraPayment, start); err != nil {
			return err
		}
	}
	if err := s.addContribution(s.cash, start); err != nil {
		return err
	}
	s.monthsUntilRebalance = s.Scenario.RebalanceMonths

	// a rate is only required when a mortgage is opened or income is
	// derived from one
	rate, err := s.initialMortgageRate(start)
	needsRate := s.Strategy == domain.Strategy_Invest ||
		s.cash.LessThan(s.homeValue) ||
		s.Scenario.IncomeStrategy.IsMortgageBased()
	if needsRate && errors.Is(err, repository.ErrNoData) {
		return &domain.InvalidError{Reason: fmt.Sprintf("no mortgage rate available for %s", start)}
	} else if needsRate && err != nil {
		return err
	}

	switch s.Strategy {
	case domain.Strategy_AvoidMortgage:
		// buy outright when possible, otherwise borrow only the shortfall
		if s.cash.LessThan(s.homeValue) {
			if err := s.takeOutMortgage(s.homeValue.Sub(s.cash), rate, start); err != nil {
				return err
			}
		}
	case domain.Strategy_Invest:
		if err := s.takeOutMortgage(s.homeValue, rate, start); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown strategy %q", s.Strategy)
	}

	if err := s.adjustCash(s.homeValue.Neg()); err != nil {
		return err
	}

	s.monthlyIncome, err = s.initialIncome(start, rate)
	if err != nil {
		return err
	}

	if !s.Scenario.StartingCash.IsPositive() && s.mortgage != nil && s.monthlyIncome.LessThan(s.mortgage.Payment) {
		return &domain.InvalidError{Reason: fmt.Sprintf(
			"monthly income of $%s is not enough to cover mortgage payment of $%s",
			s.monthlyIncome.StringFixed(0),
			s.mortgage.Payment.StringFixed(0),
		)}
	}

	s.state = stateInitialized
	return nil
}

// initialIncome resolves the income policy at start. Mortgage based
// policies use the payment on the full home value so both strategies
// receive the same income.
func (s *Simulation) initialIncome(start domain.MonthYear, rate decimal.Decimal) (decimal.Decimal, error) {
	income := s.Scenario.MonthlyIncome
	buffer := decimal.NewFromInt(1)

	reference := func() decimal.Decimal {
		return domain.NewMortgage(s.homeValue, rate, s.Scenario.OriginationFee, s.Scenario.MortgageTerm.Years()).Payment
	}

	switch s.Scenario.IncomeStrategy {
	case domain.IncomeStrategy_FixedInflationAdjusted, domain.IncomeStrategy_FixedInflationAdjustedMonthly:
		return s.inflate(income, start)
	case domain.IncomeStrategy_Mortgage:
		return reference().Add(buffer), nil
	case domain.IncomeStrategy_MortgagePlus25Percent:
		return util.ToDollarCents(reference().Mul(decimal.RequireFromString("1.25"))).Add(buffer), nil
	case domain.IncomeStrategy_MortgagePlus50Percent:
		return util.ToDollarCents(reference().Mul(decimal.RequireFromString("1.5"))).Add(buffer), nil
	}
	return income, nil
}

// simulate steps one month. Later steps read state left by earlier ones, so
// the order is fixed.
func (s *Simulation) simulate(now domain.MonthYear) error {
	steps := []func(domain.MonthYear) error{
		s.earnIncome,
		s.redeemBonds,
		s.calculateDividends,
		s.payMortgage,
		s.payDownHouse,
		func(domain.MonthYear) error { s.checkMortgageIsPaid(); return nil },
		s.refinance,
		s.settleTaxes,
		s.invest,
		s.rebalance,
	}
	for _, step := range steps {
		if err := step(now); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) closeBooks(now domain.MonthYear) error {
	s.log.Debug("closing books")

	s.checkMortgageIsPaid()
	if s.Scenario.ShouldPayOffHouseAtCompletion {
		if err := s.payOffHouse(now); err != nil {
			return err
		}
	}

	if err := s.liquidateBonds(now); err != nil {
		return err
	}

	if s.previousTaxes != nil {
		s.log.Debug("paying previous year taxes")
		if err := s.payTaxes(s.previousTaxes, now); err != nil {
			return err
		}
		s.previousTaxes.CarryLossesInto(s.currentTaxes)
		s.previousTaxes = nil
	}

	s.log.Debug("paying current year taxes")
	if err := s.payTaxes(s.currentTaxes, now); err != nil {
		return err
	}
	s.currentTaxes = domain.NewTaxes()

	s.state = stateClosed
	return nil
}

func (s *Simulation) earnIncome(now domain.MonthYear) error {
	income := s.monthlyIncome
	if s.Scenario.IncomeStrategy == domain.IncomeStrategy_FixedInflationAdjustedMonthly {
		var err error
		income, err = s.inflate(s.Scenario.MonthlyIncome, now)
		if err != nil {
			return err
		}
	}
	if !income.IsPositive() {
		return nil
	}

	s.log.Debugf("monthly income of $%s", income.StringFixed(0))
	if err := s.adjustCash(income); err != nil {
		return err
	}
	return s.addContribution(income, now)
}

func (s *Simulation) adjustCash(amount decimal.Decimal) error {
	amount = util.ToDollarCents(amount)
	if amount.IsNegative() && amount.Abs().GreaterThan(s.cash) {
		return fmt.Errorf("%w: withdrawal of $%s from balance of $%s", domain.ErrOverdraw, amount.Abs().StringFixed(2), s.cash.StringFixed(2))
	}
	s.cash = s.cash.Add(amount)
	return nil
}

// inflate converts baseline dollars into dollars of month now.
func (s *Simulation) inflate(amount decimal.Decimal, now domain.MonthYear) (decimal.Decimal, error) {
	adjusted, err := s.MarketData.InflationAdjust(amount, domain.Baseline, now)
	if err != nil {
		return decimal.Zero, err
	}
	return util.ToDollarCents(adjusted), nil
}

// contributions are tracked in baseline dollars when the scenario is
// inflation adjusted
func (s *Simulation) addContribution(amount decimal.Decimal, now domain.MonthYear) error {
	if s.Scenario.InflationAdjust {
		adjusted, err := s.MarketData.InflationAdjust(amount, now, domain.Baseline)
		if err != nil {
			return err
		}
		amount = adjusted
	}
	s.contributions = s.contributions.Add(amount)
	return nil
}

func (s *Simulation) netWorth(now domain.MonthYear) (decimal.Decimal, error) {
	bonds, err := s.bondValues(now)
	if err != nil {
		return decimal.Zero, err
	}
	stocks, err := s.stockValues(now)
	if err != nil {
		return decimal.Zero, err
	}
	netWorth := s.homeValue.Add(s.cash).Sub(s.mortgageBalance()).Add(bonds).Add(stocks)
	return util.ToDollarCents(netWorth), nil
}

func (s *Simulation) mortgageBalance() decimal.Decimal {
	if s.mortgage == nil {
		return decimal.Zero
	}
	return s.mortgage.Balance
}

// isFinanciallySecure is true when there is no mortgage, or when cash plus
// the after-tax proceeds of selling everything would pay it off.
func (s *Simulation) isFinanciallySecure(now domain.MonthYear) (bool, error) {
	if s.mortgage == nil {
		return true, nil
	}

	liquid := s.cash
	if len(s.bonds) > 0 {
		rate, err := s.MarketData.TreasuryRate(now)
		if err != nil {
			return false, err
		}
		for _, bond := range s.bonds {
			face := bond.FaceValue(now, rate)
			gain := util.MaxDecimal(face.Sub(bond.Purchase), decimal.Zero)
			liquid = liquid.Add(face).Sub(gain.Mul(s.Scenario.TreasuryInterestTaxRate))
		}
	}
	if len(s.stocks) > 0 {
		price, err := s.MarketData.Sp500Price(now)
		if err != nil {
			return false, err
		}
		for _, stock := range s.stocks {
			gain := util.MaxDecimal(stock.Gain(price), decimal.Zero)
			liquid = liquid.Add(stock.Value(price)).Sub(gain.Mul(s.Scenario.CapitalGainsTaxRate))
		}
	}

	return util.ToDollarCents(liquid).GreaterThanOrEqual(s.mortgage.Balance), nil
}

func (s *Simulation) trackFinancialSecurity(now domain.MonthYear) error {
	secure, err := s.isFinanciallySecure(now)
	if err != nil {
		return err
	}
	if !secure {
		return nil
	}
	s.secureMonths++
	if s.firstSecure == nil {
		first := now
		s.firstSecure = &first
		s.log.Debugf("financially secure as of %s", now)
	}
	return nil
}

func (s *Simulation) averageMortgageRates() (average, effective decimal.Decimal) {
	if s.mortgageMonths == 0 {
		return decimal.Zero, decimal.Zero
	}
	average = util.ToPercent(s.mortgageRateSum.Div(decimal.NewFromInt(int64(s.mortgageMonths))))
	effective = average
	if s.Scenario.AllowMortgageInterestDeduction {
		effective = util.ToPercent(average.Mul(decimal.NewFromInt(1).Sub(s.Scenario.MarginalTaxRate)))
	}
	return average, effective
}

func (s *Simulation) traceOverview(now domain.MonthYear) {
	if s.log.Desugar().Core().Enabled(zap.DebugLevel) {
		s.log.Debug(s.Overview(now))
	}
}

// Overview is a short summary of the financial state.
func (s *Simulation) Overview(now domain.MonthYear) string {
	lines := []string{}
	if netWorth, err := s.netWorth(now); err == nil {
		lines = append(lines, fmt.Sprintf(
			"$%s net worth and $%s gain/loss over contributions",
			netWorth.StringFixed(0),
			netWorth.Sub(s.contributions).StringFixed(0),
		))
	}
	lines = append(lines, fmt.Sprintf("$%s cash", s.cash.StringFixed(0)))
	if s.mortgage != nil {
		lines = append(lines, s.mortgage.String())
	}
	if len(s.bonds) > 0 {
		lines = append(lines, fmt.Sprintf("%d bonds", len(s.bonds)))
	}
	if len(s.stocks) > 0 {
		lines = append(lines, fmt.Sprintf("%d stocks", len(s.stocks)))
	}
	return strings.Join(lines, "\n")
}

// Status is a full snapshot of the financial state, used to diagnose
// failed runs.
func (s *Simulation) Status(now domain.MonthYear) string {
	lines := []string{}
	if netWorth, err := s.netWorth(now); err == nil {
		lines = append(lines, fmt.Sprintf("Net worth is $%s", netWorth.StringFixed(0)))
	} else {
		lines = append(lines, "Net worth is unavailable: "+err.Error())
	}
	lines = append(lines,
		fmt.Sprintf("External capital of $%s added", s.contributions.StringFixed(0)),
		fmt.Sprintf("Home value is $%s", s.homeValue.StringFixed(0)),
	)
	if s.cash.IsPositive() {
		lines = append(lines, fmt.Sprintf("Cash on hand is $%s", s.cash.StringFixed(0)))
	}
	if s.mortgage != nil {
		lines = append(lines, s.mortgage.String())
	}
	if s.currentTaxes != nil && !s.currentTaxes.IsEmpty() {
		lines = append(lines, "Current Year Taxes", s.currentTaxes.String())
	}
	if s.previousTaxes != nil && !s.previousTaxes.IsEmpty() {
		lines = append(lines, "Previous Year Taxes", s.previousTaxes.String())
	}

	if len(s.bonds) > 0 {
		if rate, err := s.MarketData.TreasuryRate(now); err == nil {
			lines = append(lines, fmt.Sprintf("%d bonds", len(s.bonds)))
			for _, bond := range s.bonds {
				face := bond.FaceValue(now, rate)
				lines = append(lines, fmt.Sprintf(
					"\t%s; $%s face value; $%s gain/loss",
					bond, face.StringFixed(0), face.Sub(bond.Purchase).StringFixed(0),
				))
			}
		}
	}
	if len(s.stocks) > 0 {
		if price, err := s.MarketData.Sp500Price(now); err == nil {
			lines = append(lines, fmt.Sprintf("%d stocks", len(s.stocks)))
			for _, stock := range s.stocks {
				lines = append(lines, fmt.Sprintf(
					"\t%s; $%s value; $%s gain/loss",
					stock, stock.Value(price).StringFixed(0), stock.Gain(price).StringFixed(0),
				))
			}
		}
	}
	return strings.Join(lines, "\n")
}
