package repository

import (
	"fmt"
	"io"
	"os"

	"mortgagesim/internal/domain"

	"github.com/gocarina/gocsv"
)

type resultRow struct {
	Start                 string `csv:"start"`
	Strategy              string `csv:"strategy"`
	Outcome               string `csv:"outcome"`
	NetWorth              string `csv:"net_worth"`
	Contributions         string `csv:"contributions"`
	NetGain               string `csv:"net_gain"`
	Months                int    `csv:"months"`
	SecureMonths          int    `csv:"secure_months"`
	FirstSecure           string `csv:"first_secure"`
	AverageMortgageRate   string `csv:"average_mortgage_rate"`
	EffectiveMortgageRate string `csv:"effective_mortgage_rate"`
	FailedAt              string `csv:"failed_at"`
	Error                 string `csv:"error"`
}

func newResultRow(r domain.Result) resultRow {
	row := resultRow{
		Start:                 r.Start.Key(),
		Strategy:              string(r.Strategy),
		Outcome:               r.Outcome.String(),
		NetWorth:              r.NetWorth.StringFixed(2),
		Contributions:         r.Contributions.StringFixed(2),
		NetGain:               r.NetGain.StringFixed(2),
		Months:                r.Months,
		SecureMonths:          r.SecureMonths,
		AverageMortgageRate:   r.AverageMortgageRate.StringFixed(4),
		EffectiveMortgageRate: r.EffectiveMortgageRate.StringFixed(4),
		Error:                 r.Error,
	}
	if r.FirstSecure != nil {
		row.FirstSecure = r.FirstSecure.Key()
	}
	if r.FailedAt != nil {
		row.FailedAt = r.FailedAt.Key()
	}
	return row
}

// WriteResultsCsv writes every result of every given strategy, ordered by
// strategy then start month.
func WriteResultsCsv(w io.Writer, results ...*domain.Results) error {
	rows := []resultRow{}
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, item := range r.Items() {
			rows = append(rows, newResultRow(item))
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write results csv: %w", err)
	}
	return nil
}

func WriteResultsFile(path string, results ...*domain.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	return WriteResultsCsv(f, results...)
}
