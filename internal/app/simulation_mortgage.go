package app

import (
	"errors"
	"fmt"

	"mortgagesim/internal/domain"
	"mortgagesim/internal/repository"
	"mortgagesim/internal/util"

	"github.com/shopspring/decimal"
)

// initialMortgageRate is the scenario override when set, otherwise the
// historical rate for the month.
func (s *Simulation) initialMortgageRate(now domain.MonthYear) (decimal.Decimal, error) {
	if s.Scenario.MortgageInterestRate.IsPositive() {
		return s.Scenario.MortgageInterestRate, nil
	}
	return s.MarketData.MortgageRate(now, s.Scenario.MortgageTerm)
}

func (s *Simulation) takeOutMortgage(amount, rate decimal.Decimal, now domain.MonthYear) error {
	if s.mortgage != nil {
		return fmt.Errorf("%w: cannot take out a second mortgage in %s", domain.ErrMortgageExists, now)
	}
	if !amount.IsPositive() {
		return nil
	}
	s.mortgage = domain.NewMortgage(amount, rate, s.Scenario.OriginationFee, s.Scenario.MortgageTerm.Years())
	s.log.Debugf("%s: took out %s", now, s.mortgage)
	return s.adjustCash(s.mortgage.Proceeds)
}

func (s *Simulation) payMortgage(now domain.MonthYear) error {
	s.checkMortgageIsPaid()
	if s.mortgage == nil {
		return nil
	}

	interest := s.mortgage.MonthlyInterest()
	// the final payment only covers what is left
	payment := util.MinDecimal(s.mortgage.Payment, s.mortgage.Balance.Add(interest))

	ok, err := s.scrounge(payment, now)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.FailedError{
			When:   now,
			Reason: fmt.Sprintf("unable to make mortgage payment of $%s", payment.StringFixed(2)),
		}
	}
	if err := s.adjustCash(payment.Neg()); err != nil {
		return err
	}

	s.currentTaxes.MortgageInterest = s.currentTaxes.MortgageInterest.Add(interest)
	s.mortgageMonths++
	s.mortgageRateSum = s.mortgageRateSum.Add(s.mortgage.InterestRate)

	principal := payment.Sub(interest)
	s.mortgage.Balance = util.MaxDecimal(decimal.Zero, util.ToDollarCents(s.mortgage.Balance.Sub(principal)))
	s.log.Debugf("mortgage payment of $%s with $%s interest; $%s balance", payment.StringFixed(2), interest.StringFixed(2), s.mortgage.Balance.StringFixed(0))
	return nil
}

// payDownHouse applies extra principal. AvoidMortgage puts all of its cash
// toward the balance; Invest only pays the configured extra payment.
func (s *Simulation) payDownHouse(now domain.MonthYear) error {
	if s.mortgage == nil || !s.cash.IsPositive() {
		return nil
	}

	var principal decimal.Decimal
	switch s.Strategy {
	case domain.Strategy_AvoidMortgage:
		principal = util.MinDecimal(s.mortgage.Balance, s.cash)
	case domain.Strategy_Invest:
		if !s.extraPayment.IsPositive() {
			return nil
		}
		principal = util.MinDecimal(s.extraPayment, util.MinDecimal(s.mortgage.Balance, s.cash))
	}
	if !principal.IsPositive() {
		return nil
	}

	if err := s.adjustCash(principal.Neg()); err != nil {
		return err
	}
	s.mortgage.Balance = s.mortgage.Balance.Sub(principal)
	s.log.Debugf("extra principal payment of $%s; $%s balance", principal.StringFixed(0), s.mortgage.Balance.StringFixed(0))
	return nil
}

func (s *Simulation) checkMortgageIsPaid() {
	if s.mortgage != nil && !s.mortgage.Balance.IsPositive() {
		s.log.Debug("mortgage is paid off")
		s.mortgage = nil
	}
}

// shouldRefinance reports the market rate to refinance at, if refinancing
// pays back its cost within the configured number of months.
func (s *Simulation) shouldRefinance(now domain.MonthYear) (decimal.Decimal, bool, error) {
	if !s.Scenario.AllowRefinance || s.mortgage == nil {
		return decimal.Zero, false, nil
	}

	marketRate, err := s.MarketData.MortgageRate(now, s.Scenario.MortgageTerm)
	if errors.Is(err, repository.ErrNoData) {
		return decimal.Zero, false, nil
	} else if err != nil {
		return decimal.Zero, false, err
	}
	if marketRate.GreaterThanOrEqual(s.mortgage.InterestRate) {
		return decimal.Zero, false, nil
	}

	cost := util.ToDollarCents(s.mortgage.Balance.Mul(s.Scenario.OriginationFee))
	payment := domain.CalculatePayment(s.mortgage.Balance.Add(cost), marketRate, s.mortgage.Years)
	if payment.GreaterThanOrEqual(s.mortgage.Payment) {
		return decimal.Zero, false, nil
	}

	months := decimal.NewFromInt(int64(max(1, s.Scenario.RefinancePayBackMonths)))
	savings := s.mortgage.Payment.Sub(payment).Mul(months)
	return marketRate, savings.GreaterThan(cost), nil
}

func (s *Simulation) refinance(now domain.MonthYear) error {
	rate, ok, err := s.shouldRefinance(now)
	if err != nil || !ok {
		return err
	}

	old := s.mortgage
	amount := old.Balance
	if s.Strategy == domain.Strategy_Invest && s.Scenario.CashOutRefinance && s.homeValue.GreaterThan(amount) {
		amount = s.homeValue
	}

	s.log.Debugf("refinancing %s", old)
	s.mortgage = nil
	if err := s.takeOutMortgage(amount, rate, now); err != nil {
		return err
	}
	return s.adjustCash(old.Balance.Neg())
}

func (s *Simulation) payOffHouse(now domain.MonthYear) error {
	s.checkMortgageIsPaid()
	if s.mortgage == nil {
		return nil
	}

	balance := s.mortgage.Balance
	ok, err := s.scrounge(balance, now)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.FailedError{
			When:   now,
			Reason: fmt.Sprintf("unable to pay off mortgage balance of $%s", balance.StringFixed(2)),
		}
	}
	if err := s.adjustCash(balance.Neg()); err != nil {
		return err
	}
	s.log.Debugf("paid off mortgage balance of $%s", balance.StringFixed(0))
	s.mortgage = nil
	return nil
}
