package domain

import (
	"errors"
	"fmt"
)

// modeling errors; any of these abort a sweep
var (
	ErrOverdraw        = errors.New("withdrawal would overdraw cash")
	ErrTaxRollover     = errors.New("previous year taxes still open at year end")
	ErrMortgageExists  = errors.New("mortgage already exists")
	ErrInvalidBondLot  = errors.New("bond lot par must exceed purchase")
	ErrSimulationState = errors.New("simulation used out of order")
)

// FailedError is a mid-run insolvency: a required payment could not be
// funded even after liquidating the portfolio.
type FailedError struct {
	When   MonthYear
	Reason string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("simulation failed in %s: %s", e.When, e.Reason)
}

// InvalidError means the scenario could not be satisfied at inception.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string {
	return "simulation invalid: " + e.Reason
}
