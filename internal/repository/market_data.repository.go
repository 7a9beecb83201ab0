package repository

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"mortgagesim/internal/domain"
	"mortgagesim/internal/util"

	"github.com/cespare/xxhash/v2"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

var ErrNoData = errors.New("no market data")

// MarketDataRepository is the historical data every simulation reads.
// Rates and yields are annual fractions; inflation is a monthly fraction.
type MarketDataRepository interface {
	MortgageRate(date domain.MonthYear, term domain.MortgageTerm) (decimal.Decimal, error)
	TreasuryRate(date domain.MonthYear) (decimal.Decimal, error)
	Sp500Price(date domain.MonthYear) (decimal.Decimal, error)
	Sp500Dividend(date domain.MonthYear) (decimal.Decimal, error)
	InflationRate(date domain.MonthYear) (decimal.Decimal, error)
	// InflationAdjust compounds monthly inflation from one month to another,
	// deflating instead when to is before from.
	InflationAdjust(amount decimal.Decimal, from, to domain.MonthYear) (decimal.Decimal, error)
	// Fingerprint identifies the loaded history. Two datasets with the same
	// months and values share a fingerprint regardless of row order.
	Fingerprint() string
}

// MarketDataRow is one month of history. Blank cells mean the series has
// no value that month.
type MarketDataRow struct {
	Date          string `csv:"date"`
	Mortgage15y   string `csv:"mortgage_15y"`
	Mortgage30y   string `csv:"mortgage_30y"`
	Treasury1y    string `csv:"treasury_1y"`
	Sp500Price    string `csv:"sp500_price"`
	Sp500Dividend string `csv:"sp500_dividend"`
	Inflation     string `csv:"inflation"`
}

type marketMonth struct {
	mortgage15y   *decimal.Decimal
	mortgage30y   *decimal.Decimal
	treasury1y    *decimal.Decimal
	sp500Price    *decimal.Decimal
	sp500Dividend *decimal.Decimal
	inflation     *decimal.Decimal
}

type inflationRange struct {
	from domain.MonthYear
	to   domain.MonthYear
}

type marketDataRepositoryHandler struct {
	months      map[domain.MonthYear]marketMonth
	fingerprint string

	Cache     map[inflationRange]decimal.Decimal
	ReadMutex *sync.RWMutex
}

func NewMarketDataRepository(rows []MarketDataRow) (MarketDataRepository, error) {
	months := map[domain.MonthYear]marketMonth{}
	for i, row := range rows {
		date, err := domain.ParseMonthYear(strings.TrimSpace(row.Date))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		m := marketMonth{}
		fields := []struct {
			name   string
			value  string
			target **decimal.Decimal
		}{
			{"mortgage_15y", row.Mortgage15y, &m.mortgage15y},
			{"mortgage_30y", row.Mortgage30y, &m.mortgage30y},
			{"treasury_1y", row.Treasury1y, &m.treasury1y},
			{"sp500_price", row.Sp500Price, &m.sp500Price},
			{"sp500_dividend", row.Sp500Dividend, &m.sp500Dividend},
			{"inflation", row.Inflation, &m.inflation},
		}
		for _, f := range fields {
			v := strings.TrimSpace(f.value)
			if v == "" {
				continue
			}
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("row %d (%s): invalid %s %q: %w", i+1, date.Key(), f.name, v, err)
			}
			*f.target = &d
		}
		months[date] = m
	}

	return &marketDataRepositoryHandler{
		months:      months,
		fingerprint: fingerprintMonths(months),
		Cache:       map[inflationRange]decimal.Decimal{},
		ReadMutex:   &sync.RWMutex{},
	}, nil
}

func fingerprintMonths(months map[domain.MonthYear]marketMonth) string {
	dates := make([]domain.MonthYear, 0, len(months))
	for date := range months {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	cell := func(d *decimal.Decimal) string {
		if d == nil {
			return ""
		}
		return d.String()
	}
	digest := xxhash.New()
	for _, date := range dates {
		m := months[date]
		fmt.Fprintf(
			digest,
			"%s,%s,%s,%s,%s,%s,%s\n",
			date.Key(),
			cell(m.mortgage15y),
			cell(m.mortgage30y),
			cell(m.treasury1y),
			cell(m.sp500Price),
			cell(m.sp500Dividend),
			cell(m.inflation),
		)
	}
	return strconv.FormatUint(digest.Sum64(), 16)
}

func (h marketDataRepositoryHandler) Fingerprint() string {
	return h.fingerprint
}

func LoadMarketDataCsv(r io.Reader) (MarketDataRepository, error) {
	rows := []MarketDataRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse market data csv: %w", err)
	}
	return NewMarketDataRepository(rows)
}

func LoadMarketDataFile(path string) (MarketDataRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open market data: %w", err)
	}
	defer f.Close()

	return LoadMarketDataCsv(f)
}

func (h marketDataRepositoryHandler) lookup(date domain.MonthYear, series string, get func(marketMonth) *decimal.Decimal) (decimal.Decimal, error) {
	m, ok := h.months[date]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s missing for %s", ErrNoData, series, date)
	}
	v := get(m)
	if v == nil {
		return decimal.Zero, fmt.Errorf("%w: %s missing for %s", ErrNoData, series, date)
	}
	return *v, nil
}

func (h marketDataRepositoryHandler) MortgageRate(date domain.MonthYear, term domain.MortgageTerm) (decimal.Decimal, error) {
	switch term {
	case domain.MortgageTerm_FifteenYear:
		return h.lookup(date, "15 year mortgage rate", func(m marketMonth) *decimal.Decimal { return m.mortgage15y })
	case domain.MortgageTerm_ThirtyYear:
		return h.lookup(date, "30 year mortgage rate", func(m marketMonth) *decimal.Decimal { return m.mortgage30y })
	}
	return decimal.Zero, fmt.Errorf("unknown mortgage term %q", term)
}

func (h marketDataRepositoryHandler) TreasuryRate(date domain.MonthYear) (decimal.Decimal, error) {
	return h.lookup(date, "1 year treasury rate", func(m marketMonth) *decimal.Decimal { return m.treasury1y })
}

func (h marketDataRepositoryHandler) Sp500Price(date domain.MonthYear) (decimal.Decimal, error) {
	return h.lookup(date, "S&P 500 price", func(m marketMonth) *decimal.Decimal { return m.sp500Price })
}

func (h marketDataRepositoryHandler) Sp500Dividend(date domain.MonthYear) (decimal.Decimal, error) {
	return h.lookup(date, "S&P 500 dividend", func(m marketMonth) *decimal.Decimal { return m.sp500Dividend })
}

func (h marketDataRepositoryHandler) InflationRate(date domain.MonthYear) (decimal.Decimal, error) {
	v, err := h.lookup(date, "inflation rate", func(m marketMonth) *decimal.Decimal { return m.inflation })
	if err != nil {
		return decimal.Zero, err
	}
	return util.ToPercent(v), nil
}

func (h marketDataRepositoryHandler) InflationAdjust(amount decimal.Decimal, from, to domain.MonthYear) (decimal.Decimal, error) {
	factor, err := h.inflationFactor(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(factor), nil
}

func (h marketDataRepositoryHandler) inflationFactor(from, to domain.MonthYear) (decimal.Decimal, error) {
	key := inflationRange{from: from, to: to}

	h.ReadMutex.RLock()
	factor, ok := h.Cache[key]
	h.ReadMutex.RUnlock()
	if ok {
		return factor, nil
	}

	start, end := from, to
	inverted := end.Before(start)
	if inverted {
		start, end = end, start
	}

	value := decimal.NewFromInt(1)
	for now := start; now.Before(end); now = now.AddMonths(1) {
		rate, err := h.InflationRate(now)
		if err != nil {
			return decimal.Zero, err
		}
		value = value.Add(value.Mul(rate)).Round(12)
	}
	if inverted {
		value = decimal.NewFromInt(1).Div(value)
	}
	factor = value.RoundBank(5)

	h.ReadMutex.Lock()
	h.Cache[key] = factor
	h.ReadMutex.Unlock()

	return factor, nil
}
