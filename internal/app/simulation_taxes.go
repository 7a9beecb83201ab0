package app

import (
	"fmt"

	"mortgagesim/internal/domain"
)

// settleTaxes closes the ledger in December and pays it the following
// April. Losses still on the ledger after settlement carry forward.
func (s *Simulation) settleTaxes(now domain.MonthYear) error {
	switch now.Month {
	case 4:
		if s.previousTaxes == nil {
			return nil
		}
		s.log.Debug("paying previous year taxes")
		if err := s.payTaxes(s.previousTaxes, now); err != nil {
			return err
		}
		s.previousTaxes.CarryLossesInto(s.currentTaxes)
		s.previousTaxes = nil
	case 12:
		if s.previousTaxes != nil {
			return fmt.Errorf("%w: %s", domain.ErrTaxRollover, now)
		}
		s.previousTaxes = s.currentTaxes
		s.currentTaxes = domain.NewTaxes()
	}
	return nil
}

func (s *Simulation) payTaxes(taxes *domain.Taxes, now domain.MonthYear) error {
	if deduction := taxes.MortgageInterestDeduction(s.Scenario); deduction.IsPositive() {
		s.log.Debugf("mortgage interest deduction of $%s", deduction.StringFixed(0))
		if err := s.adjustCash(deduction); err != nil {
			return err
		}
	}

	owed := taxes.Owed(s.Scenario)
	if !owed.IsPositive() {
		return nil
	}
	ok, err := s.scrounge(owed, now)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.FailedError{
			When:   now,
			Reason: fmt.Sprintf("unable to pay taxes of $%s", owed.StringFixed(2)),
		}
	}
	s.log.Debugf("paid taxes of $%s", owed.StringFixed(0))
	return s.adjustCash(owed.Neg())
}
