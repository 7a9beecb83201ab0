package domain

import (
	"fmt"
	"strconv"
	"strings"

	"mortgagesim/internal/util"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Strategy string

const (
	// pay down the house as fast as possible
	Strategy_AvoidMortgage Strategy = "avoid_mortgage"
	// carry the largest mortgage possible and invest the rest
	Strategy_Invest Strategy = "invest"
)

var Strategies = []Strategy{Strategy_Invest, Strategy_AvoidMortgage}

func (s Strategy) Name() string {
	switch s {
	case Strategy_AvoidMortgage:
		return "Avoiding-Mortgage"
	case Strategy_Invest:
		return "Investing"
	}
	return string(s)
}

// IncomeStrategy decides how much cash arrives every month.
type IncomeStrategy string

const (
	IncomeStrategy_Fixed                         IncomeStrategy = "fixed"
	IncomeStrategy_FixedInflationAdjusted        IncomeStrategy = "fixed_inflation_adjusted"
	IncomeStrategy_FixedInflationAdjustedMonthly IncomeStrategy = "fixed_inflation_adjusted_monthly"
	IncomeStrategy_Mortgage                      IncomeStrategy = "mortgage"
	IncomeStrategy_MortgagePlus25Percent         IncomeStrategy = "mortgage_plus_25_percent"
	IncomeStrategy_MortgagePlus50Percent         IncomeStrategy = "mortgage_plus_50_percent"
)

func (s IncomeStrategy) Valid() bool {
	switch s {
	case IncomeStrategy_Fixed,
		IncomeStrategy_FixedInflationAdjusted,
		IncomeStrategy_FixedInflationAdjustedMonthly,
		IncomeStrategy_Mortgage,
		IncomeStrategy_MortgagePlus25Percent,
		IncomeStrategy_MortgagePlus50Percent:
		return true
	}
	return false
}

// IsMortgageBased is true for policies derived from the mortgage payment.
func (s IncomeStrategy) IsMortgageBased() bool {
	return s == IncomeStrategy_Mortgage ||
		s == IncomeStrategy_MortgagePlus25Percent ||
		s == IncomeStrategy_MortgagePlus50Percent
}

// Scenario describes one sweep. It is read-only once cleaned.
type Scenario struct {
	Start           MonthYear `yaml:"start"`
	End             MonthYear `yaml:"end"`
	SimulationYears int       `yaml:"simulation_years"`

	// the house itself; closing costs and down payments are ignored
	HomeValue      decimal.Decimal `yaml:"home_value"`
	StartingCash   decimal.Decimal `yaml:"starting_cash"`
	MonthlyIncome  decimal.Decimal `yaml:"monthly_income"`
	IncomeStrategy IncomeStrategy  `yaml:"income_strategy"`
	// extra principal paid each month by the Invest strategy
	ExtraPayment decimal.Decimal `yaml:"extra_payment"`

	MortgageTerm MortgageTerm `yaml:"mortgage_term"`
	// zero means use the historical average for the month
	MortgageInterestRate decimal.Decimal `yaml:"mortgage_interest_rate"`
	OriginationFee       decimal.Decimal `yaml:"origination_fee"`

	StockPercentage decimal.Decimal `yaml:"stock_percentage"`
	// zero disables rebalancing
	RebalanceMonths int `yaml:"rebalance_months"`

	AllowRefinance         bool `yaml:"allow_refinance"`
	RefinancePayBackMonths int  `yaml:"refinance_pay_back_months"`
	CashOutRefinance       bool `yaml:"cash_out_refinance"`

	AllowMortgageInterestDeduction bool            `yaml:"allow_mortgage_interest_deduction"`
	MarginalTaxRate                decimal.Decimal `yaml:"marginal_tax_rate"`
	DividendTaxRate                decimal.Decimal `yaml:"dividend_tax_rate"`
	CapitalGainsTaxRate            decimal.Decimal `yaml:"capital_gains_tax_rate"`
	TreasuryInterestTaxRate        decimal.Decimal `yaml:"treasury_interest_tax_rate"`

	// surplus cash at or below MinimumCash stays uninvested
	MinimumCash  decimal.Decimal `yaml:"minimum_cash"`
	MinimumBond  decimal.Decimal `yaml:"minimum_bond"`
	MinimumStock decimal.Decimal `yaml:"minimum_stock"`

	InflationAdjust               bool `yaml:"inflation_adjust"`
	ShouldPayOffHouseAtCompletion bool `yaml:"should_pay_off_house_at_completion"`
}

func DefaultScenario() Scenario {
	return Scenario{
		Start:                          MinMonthYear,
		End:                            MaxMonthYear,
		SimulationYears:                10,
		HomeValue:                      decimal.NewFromInt(200000),
		StartingCash:                   decimal.NewFromInt(200000),
		MonthlyIncome:                  decimal.NewFromInt(1500),
		IncomeStrategy:                 IncomeStrategy_Fixed,
		ExtraPayment:                   decimal.Zero,
		MortgageTerm:                   MortgageTerm_ThirtyYear,
		MortgageInterestRate:           decimal.Zero,
		OriginationFee:                 decimal.RequireFromString("0.0125"),
		StockPercentage:                decimal.RequireFromString("0.8"),
		RebalanceMonths:                12,
		AllowRefinance:                 true,
		RefinancePayBackMonths:         60,
		CashOutRefinance:               false,
		AllowMortgageInterestDeduction: true,
		MarginalTaxRate:                decimal.RequireFromString("0.38"),
		DividendTaxRate:                decimal.RequireFromString("0.15"),
		CapitalGainsTaxRate:            decimal.RequireFromString("0.15"),
		TreasuryInterestTaxRate:        decimal.RequireFromString("0.32"),
		MinimumCash:                    decimal.NewFromInt(1000),
		MinimumBond:                    decimal.NewFromInt(100),
		MinimumStock:                   decimal.NewFromInt(500),
		InflationAdjust:                false,
		ShouldPayOffHouseAtCompletion:  true,
	}
}

// Clean returns a copy with every field clamped into a usable range.
func (s Scenario) Clean() Scenario {
	zero := decimal.Zero
	one := decimal.NewFromInt(1)
	rate := func(d decimal.Decimal) decimal.Decimal {
		return util.Clamp(d, zero, one)
	}
	money := func(d decimal.Decimal) decimal.Decimal {
		return util.ToDollarCents(util.MaxDecimal(d, zero))
	}

	out := s
	if out.Start.IsZero() {
		out.Start = MinMonthYear
	}
	if out.End.IsZero() {
		out.End = MaxMonthYear
	}
	out.Start = Constrain(out.Start)
	out.End = Constrain(out.End)
	if out.End.Before(out.Start) {
		out.Start, out.End = out.End, out.Start
	}
	if out.SimulationYears < 1 {
		out.SimulationYears = 1
	}

	out.HomeValue = money(out.HomeValue)
	out.StartingCash = money(out.StartingCash)
	out.MonthlyIncome = money(out.MonthlyIncome)
	out.ExtraPayment = money(out.ExtraPayment)
	if !out.IncomeStrategy.Valid() {
		out.IncomeStrategy = IncomeStrategy_Fixed
	}

	if !out.MortgageTerm.Valid() {
		out.MortgageTerm = MortgageTerm_ThirtyYear
	}
	out.MortgageInterestRate = rate(out.MortgageInterestRate)
	out.OriginationFee = rate(out.OriginationFee)

	out.StockPercentage = rate(out.StockPercentage)
	if out.RebalanceMonths < 0 {
		out.RebalanceMonths = 0
	}
	if out.RefinancePayBackMonths < 1 {
		out.RefinancePayBackMonths = 1
	}

	out.MarginalTaxRate = rate(out.MarginalTaxRate)
	out.DividendTaxRate = rate(out.DividendTaxRate)
	out.CapitalGainsTaxRate = rate(out.CapitalGainsTaxRate)
	out.TreasuryInterestTaxRate = rate(out.TreasuryInterestTaxRate)

	out.MinimumCash = money(out.MinimumCash)
	out.MinimumBond = money(out.MinimumBond)
	out.MinimumStock = money(out.MinimumStock)

	return out
}

// Fingerprint identifies the scenario contents for caching runs.
func (s Scenario) Fingerprint() (string, error) {
	bytes, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scenario: %w", err)
	}
	return strconv.FormatUint(xxhash.Sum64(bytes), 16), nil
}

func (s Scenario) String() string {
	pct := func(d decimal.Decimal) string {
		return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	}

	lines := []string{
		fmt.Sprintf("Starts %s and ends %s", s.Start, s.End),
		fmt.Sprintf("Each simulation is %d years", s.SimulationYears),
		fmt.Sprintf("Home value is $%s", s.HomeValue.StringFixed(0)),
		fmt.Sprintf("Monthly income is $%s (%s)", s.MonthlyIncome.StringFixed(0), s.IncomeStrategy),
	}
	if s.StartingCash.IsPositive() {
		lines = append(lines, fmt.Sprintf("Starting cash is $%s", s.StartingCash.StringFixed(0)))
	}
	if s.ExtraPayment.IsPositive() {
		lines = append(lines, fmt.Sprintf("Extra principal payment of $%s when investing", s.ExtraPayment.StringFixed(0)))
	}
	lines = append(lines, fmt.Sprintf("%d year mortgage", s.MortgageTerm.Years()))
	if s.MortgageInterestRate.IsPositive() {
		lines = append(lines, "Mortgage interest rate is "+pct(s.MortgageInterestRate))
	} else {
		lines = append(lines, "Mortgage interest rate is monthly average")
	}
	lines = append(lines, pct(s.OriginationFee)+" origination fee on loan")
	lines = append(lines, "Invest "+pct(s.StockPercentage)+" in stocks")
	if s.ShouldPayOffHouseAtCompletion {
		lines = append(lines, "Must pay off house at end of simulation")
	}
	if s.AllowRefinance {
		lines = append(lines, fmt.Sprintf("Allow refinance if costs recouped in %d months", s.RefinancePayBackMonths))
		if s.CashOutRefinance {
			lines = append(lines, "Cash out home value on refinance when investing")
		}
	}
	if s.RebalanceMonths > 0 {
		lines = append(lines, fmt.Sprintf("Rebalance every %d months", s.RebalanceMonths))
	}
	if s.AllowMortgageInterestDeduction {
		lines = append(lines, "Allow mortgage interest deduction with a "+pct(s.MarginalTaxRate)+" marginal tax rate")
	}
	lines = append(lines,
		pct(s.DividendTaxRate)+" dividend tax rate",
		pct(s.CapitalGainsTaxRate)+" capital gains tax rate",
		pct(s.TreasuryInterestTaxRate)+" treasury tax rate",
	)
	if s.InflationAdjust {
		lines = append(lines, fmt.Sprintf("Dollar amounts are in %s dollars", Baseline))
	}
	return strings.Join(lines, "\n")
}
