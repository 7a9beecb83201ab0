package app

import (
	"fmt"

	"mortgagesim/internal/domain"
	"mortgagesim/internal/util"

	"github.com/shopspring/decimal"
)

var (
	rebalanceThreshold       = decimal.RequireFromString("0.01")
	rebalanceMinimumTradeAmt = decimal.NewFromInt(1000)
)

func (s *Simulation) bondValues(now domain.MonthYear) (decimal.Decimal, error) {
	total := decimal.Zero
	if len(s.bonds) == 0 {
		return total, nil
	}
	rate, err := s.MarketData.TreasuryRate(now)
	if err != nil {
		return decimal.Zero, err
	}
	for _, bond := range s.bonds {
		total = total.Add(bond.FaceValue(now, rate))
	}
	return total, nil
}

func (s *Simulation) stockValues(now domain.MonthYear) (decimal.Decimal, error) {
	total := decimal.Zero
	if len(s.stocks) == 0 {
		return total, nil
	}
	price, err := s.MarketData.Sp500Price(now)
	if err != nil {
		return decimal.Zero, err
	}
	for _, stock := range s.stocks {
		total = total.Add(stock.Value(price))
	}
	return total, nil
}

// redeemBonds collects par on every matured lot.
func (s *Simulation) redeemBonds(now domain.MonthYear) error {
	remaining := []*domain.BondLot{}
	for _, bond := range s.bonds {
		if !bond.IsMatured(now) {
			remaining = append(remaining, bond)
			continue
		}

		par := util.ToDollarCents(bond.Par)
		if err := s.adjustCash(par); err != nil {
			return err
		}
		interest := util.ToDollarCents(bond.Par.Sub(bond.Purchase))
		s.currentTaxes.TreasuryInterest = s.currentTaxes.TreasuryInterest.Add(interest)
		s.log.Debugf("redeemed %s", bond)
	}
	s.bonds = remaining
	return nil
}

// liquidateBonds turns every remaining lot into cash, matured or not.
func (s *Simulation) liquidateBonds(now domain.MonthYear) error {
	if err := s.redeemBonds(now); err != nil {
		return err
	}
	if len(s.bonds) == 0 {
		return nil
	}
	total, err := s.bondValues(now)
	if err != nil {
		return err
	}
	return s.sellBonds(total, now)
}

func (s *Simulation) calculateDividends(now domain.MonthYear) error {
	if !now.IsQuarterEnd() || len(s.stocks) == 0 {
		return nil
	}

	yield := decimal.Zero
	for i := 0; i < 3; i++ {
		d, err := s.MarketData.Sp500Dividend(now.AddMonths(-i))
		if err != nil {
			return err
		}
		yield = yield.Add(d)
	}
	// average annual yield over the quarter, paid for one quarter
	quarterly := yield.Div(decimal.NewFromInt(3)).Mul(decimal.NewFromInt(3)).Div(decimal.NewFromInt(12))

	price, err := s.MarketData.Sp500Price(now)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, stock := range s.stocks {
		amount := util.ToDollarCents(quarterly.Mul(stock.Value(price)))
		if err := s.adjustCash(amount); err != nil {
			return err
		}
		s.currentTaxes.Dividends = s.currentTaxes.Dividends.Add(amount)
		total = total.Add(amount)
	}
	if total.IsPositive() {
		s.log.Debugf("$%s dividends", total.StringFixed(0))
	}
	return nil
}

// invest splits surplus cash between stocks and bonds.
func (s *Simulation) invest(now domain.MonthYear) error {
	if s.cash.LessThanOrEqual(util.MaxDecimal(decimal.Zero, s.Scenario.MinimumCash)) {
		return nil
	}

	available := s.cash
	stockAmount := util.ToDollarCents(available.Mul(s.Scenario.StockPercentage))
	if err := s.buyStocks(util.MinDecimal(stockAmount, s.cash), now); err != nil {
		return err
	}

	bondAmount := util.ToDollarCents(available.Mul(decimal.NewFromInt(1).Sub(s.Scenario.StockPercentage)))
	return s.buyBonds(util.MinDecimal(bondAmount, s.cash), now)
}

func (s *Simulation) buyStocks(amount decimal.Decimal, now domain.MonthYear) error {
	if amount.LessThanOrEqual(util.MaxDecimal(decimal.Zero, s.Scenario.MinimumStock)) {
		return nil
	}
	price, err := s.MarketData.Sp500Price(now)
	if err != nil {
		return err
	}
	if !price.IsPositive() {
		return fmt.Errorf("non-positive S&P 500 price in %s", now)
	}
	if err := s.adjustCash(amount.Neg()); err != nil {
		return err
	}
	stock := domain.NewStockLot(amount, price)
	s.stocks = append(s.stocks, stock)
	s.log.Debugf("bought %s", stock)
	return nil
}

func (s *Simulation) buyBonds(amount decimal.Decimal, now domain.MonthYear) error {
	if amount.LessThanOrEqual(util.MaxDecimal(decimal.Zero, s.Scenario.MinimumBond)) {
		return nil
	}
	rate, err := s.MarketData.TreasuryRate(now)
	if err != nil {
		return err
	}
	bond := domain.NewBondLot(amount, rate, now)
	if !bond.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidBondLot, bond)
	}
	if err := s.adjustCash(amount.Neg()); err != nil {
		return err
	}
	s.bonds = append(s.bonds, bond)
	s.log.Debugf("bought %s", bond)
	return nil
}

// sellBonds sells lots in purchase order until amount is raised or no
// bonds remain.
func (s *Simulation) sellBonds(amount decimal.Decimal, now domain.MonthYear) error {
	if len(s.bonds) == 0 || !amount.IsPositive() {
		return nil
	}
	rate, err := s.MarketData.TreasuryRate(now)
	if err != nil {
		return err
	}

	for amount.IsPositive() && len(s.bonds) > 0 {
		sold, err := s.sellBond(0, amount, rate, now)
		if err != nil {
			return err
		}
		amount = amount.Sub(sold)
	}
	return nil
}

func (s *Simulation) sellBond(i int, amount, rate decimal.Decimal, now domain.MonthYear) (decimal.Decimal, error) {
	bond := s.bonds[i]
	face := bond.FaceValue(now, rate)

	if face.LessThanOrEqual(amount) {
		interest := util.ToDollarCents(face.Sub(bond.Purchase))
		s.currentTaxes.TreasuryInterest = s.currentTaxes.TreasuryInterest.Add(interest)
		if err := s.adjustCash(face); err != nil {
			return decimal.Zero, err
		}
		s.bonds = append(s.bonds[:i], s.bonds[i+1:]...)
		s.log.Debugf("sold %s for $%s", bond, face.StringFixed(0))
		return face, nil
	}

	fraction := amount.Div(face)
	interest := util.ToDollarCents(face.Sub(bond.Purchase).Mul(fraction))
	s.currentTaxes.TreasuryInterest = s.currentTaxes.TreasuryInterest.Add(interest)
	if err := s.adjustCash(amount); err != nil {
		return decimal.Zero, err
	}
	bond.Scale(decimal.NewFromInt(1).Sub(fraction))
	s.log.Debugf("sold $%s of %s", amount.StringFixed(0), bond)
	return amount, nil
}

// sellStocks sells the highest basis lots first to keep realized gains low.
func (s *Simulation) sellStocks(amount decimal.Decimal, now domain.MonthYear) error {
	if len(s.stocks) == 0 || !amount.IsPositive() {
		return nil
	}
	price, err := s.MarketData.Sp500Price(now)
	if err != nil {
		return err
	}

	for amount.IsPositive() && len(s.stocks) > 0 {
		highest := 0
		for i, stock := range s.stocks {
			if stock.BasisPrice.GreaterThan(s.stocks[highest].BasisPrice) {
				highest = i
			}
		}
		sold, err := s.sellStock(highest, amount, price)
		if err != nil {
			return err
		}
		amount = amount.Sub(sold)
	}
	return nil
}

func (s *Simulation) sellStock(i int, amount, price decimal.Decimal) (decimal.Decimal, error) {
	stock := s.stocks[i]
	value := stock.Value(price)

	if value.LessThanOrEqual(amount) {
		gain := stock.Gain(price)
		s.currentTaxes.CapitalGains = s.currentTaxes.CapitalGains.Add(gain)
		if err := s.adjustCash(value); err != nil {
			return decimal.Zero, err
		}
		s.stocks = append(s.stocks[:i], s.stocks[i+1:]...)
		s.log.Debugf("sold %s for $%s", stock, value.StringFixed(0))
		return value, nil
	}

	shares := amount.Div(price)
	gain := util.ToDollarCents(shares.Mul(price.Sub(stock.BasisPrice)))
	s.currentTaxes.CapitalGains = s.currentTaxes.CapitalGains.Add(gain)
	if err := s.adjustCash(amount); err != nil {
		return decimal.Zero, err
	}
	stock.Shares = stock.Shares.Sub(shares)
	s.log.Debugf("sold $%s of %s", amount.StringFixed(0), stock)
	return amount, nil
}

// scrounge raises cash to cover amount, selling bonds before stocks. It
// reports whether cash now covers amount.
func (s *Simulation) scrounge(amount decimal.Decimal, now domain.MonthYear) (bool, error) {
	if s.cash.LessThan(amount) {
		if err := s.sellBonds(util.CeilCents(amount.Sub(s.cash)), now); err != nil {
			return false, err
		}
	}
	if s.cash.LessThan(amount) {
		if err := s.sellStocks(util.CeilCents(amount.Sub(s.cash)), now); err != nil {
			return false, err
		}
	}
	return s.cash.GreaterThanOrEqual(amount), nil
}

// rebalance restores the target stock percentage every RebalanceMonths.
// Small drifts and small trades are left alone.
func (s *Simulation) rebalance(now domain.MonthYear) error {
	if s.Scenario.RebalanceMonths <= 0 {
		return nil
	}
	s.monthsUntilRebalance--
	if s.monthsUntilRebalance > 0 {
		return nil
	}
	s.monthsUntilRebalance = s.Scenario.RebalanceMonths

	bondAmount, err := s.bondValues(now)
	if err != nil {
		return err
	}
	stockAmount, err := s.stockValues(now)
	if err != nil {
		return err
	}
	total := bondAmount.Add(stockAmount)
	if !total.IsPositive() {
		return nil
	}

	desiredStockPct := s.Scenario.StockPercentage
	desiredBondPct := decimal.NewFromInt(1).Sub(desiredStockPct)
	stockPct := stockAmount.Div(total)
	bondPct := bondAmount.Div(total)
	if stockPct.Sub(desiredStockPct).Abs().LessThanOrEqual(rebalanceThreshold) &&
		bondPct.Sub(desiredBondPct).Abs().LessThanOrEqual(rebalanceThreshold) {
		return nil
	}

	desiredStocks := util.ToDollarCents(total.Mul(desiredStockPct))
	desiredBonds := util.ToDollarCents(total.Mul(desiredBondPct))
	stockDiff := desiredStocks.Sub(stockAmount)
	bondDiff := desiredBonds.Sub(bondAmount)
	if stockDiff.Abs().LessThan(rebalanceMinimumTradeAmt) || bondDiff.Abs().LessThan(rebalanceMinimumTradeAmt) {
		return nil
	}

	s.log.Debugf(
		"rebalancing %s%% stocks / %s%% bonds",
		stockPct.Mul(decimal.NewFromInt(100)).StringFixed(1),
		bondPct.Mul(decimal.NewFromInt(100)).StringFixed(1),
	)
	if stockDiff.IsNegative() {
		if err := s.sellStocks(stockDiff.Abs(), now); err != nil {
			return err
		}
		return s.buyBonds(util.MinDecimal(bondDiff, s.cash), now)
	}
	if err := s.sellBonds(bondDiff.Abs(), now); err != nil {
		return err
	}
	return s.buyStocks(util.MinDecimal(stockDiff, s.cash), now)
}
