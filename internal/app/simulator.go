package app

import (
	"context"
	"fmt"
	"sync"

	"mortgagesim/internal/calculator"
	"mortgagesim/internal/domain"
	"mortgagesim/internal/logger"
	"mortgagesim/internal/repository"

	"github.com/google/uuid"
)

// SimulatorApp sweeps every start month of a scenario for both strategies.
type SimulatorApp interface {
	Sweep(ctx context.Context, scenario domain.Scenario) (*Sweep, error)
}

type Sweep struct {
	ID       uuid.UUID
	Scenario domain.Scenario

	AvoidMortgage *domain.Results
	Invest        *domain.Results

	AvoidMortgageSummary *calculator.StrategySummary
	InvestSummary        *calculator.StrategySummary
	Comparison           *calculator.StrategyComparison

	Profile *domain.Profile
}

func (s Sweep) Results(strategy domain.Strategy) *domain.Results {
	if strategy == domain.Strategy_AvoidMortgage {
		return s.AvoidMortgage
	}
	return s.Invest
}

type simulatorHandler struct {
	MarketDataRepository  repository.MarketDataRepository
	ResultCacheRepository repository.ResultCacheRepository
	Concurrency           int
}

// NewSimulator builds the sweep. resultCache may be nil; concurrency below
// one runs sequentially.
func NewSimulator(
	marketDataRepository repository.MarketDataRepository,
	resultCacheRepository repository.ResultCacheRepository,
	concurrency int,
) SimulatorApp {
	return &simulatorHandler{
		MarketDataRepository:  marketDataRepository,
		ResultCacheRepository: resultCacheRepository,
		Concurrency:           concurrency,
	}
}

type simulationJob struct {
	start    domain.MonthYear
	strategy domain.Strategy
}

// Sweep runs every (start month, strategy) pair in [Start, End]. Failed and
// Invalid runs are recorded; the first modeling error aborts the sweep.
func (h *simulatorHandler) Sweep(ctx context.Context, scenario domain.Scenario) (*Sweep, error) {
	scenario = scenario.Clean()
	id := uuid.New()
	log := logger.FromContext(ctx).With("sweepID", id.String())
	ctx = logger.WithContext(ctx, log)
	profile, endProfile := domain.NewProfile()
	defer endProfile()

	fingerprint := ""
	if h.ResultCacheRepository != nil {
		var err error
		fingerprint, err = scenario.Fingerprint()
		if err != nil {
			return nil, err
		}
	}

	results := map[domain.Strategy]*domain.Results{}
	for _, strategy := range domain.Strategies {
		results[strategy] = domain.NewResults(id, strategy, scenario.Start, scenario.End)
	}

	jobs := []simulationJob{}
	for m := scenario.Start; !m.After(scenario.End); m = m.AddMonths(1) {
		for _, strategy := range domain.Strategies {
			jobs = append(jobs, simulationJob{start: m, strategy: strategy})
		}
	}
	log.Infof("sweeping %d simulations from %s to %s", len(jobs), scenario.Start, scenario.End)

	simulatePhase := profile.StartPhase("simulate")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputCh := make(chan simulationJob, len(jobs))
	for _, job := range jobs {
		inputCh <- job
	}
	close(inputCh)

	numGoroutines := max(1, h.Concurrency)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		sweepErr error
	)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-inputCh:
					if !ok {
						return
					}
					result, err := h.simulate(ctx, scenario, fingerprint, job, simulatePhase)

					mu.Lock()
					if err != nil {
						if sweepErr == nil {
							sweepErr = fmt.Errorf("%s simulation starting %s: %w", job.strategy.Name(), job.start, err)
							cancel()
						}
					} else {
						results[job.strategy].Add(result)
					}
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()

	if sweepErr != nil {
		return nil, sweepErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sweep := &Sweep{
		ID:            id,
		Scenario:      scenario,
		AvoidMortgage: results[domain.Strategy_AvoidMortgage],
		Invest:        results[domain.Strategy_Invest],
		Profile:       profile,
	}

	profile.StartPhase("summarize")
	var err error
	if sweep.AvoidMortgageSummary, err = calculator.SummarizeResults(sweep.AvoidMortgage); err != nil {
		return nil, fmt.Errorf("failed to summarize avoid mortgage results: %w", err)
	}
	if sweep.InvestSummary, err = calculator.SummarizeResults(sweep.Invest); err != nil {
		return nil, fmt.Errorf("failed to summarize invest results: %w", err)
	}
	if sweep.Comparison, err = calculator.CompareStrategies(sweep.AvoidMortgage, sweep.Invest); err != nil {
		return nil, err
	}

	for _, summary := range []*calculator.StrategySummary{sweep.AvoidMortgageSummary, sweep.InvestSummary} {
		log.Infof(
			"%s: %d succeeded, %d failed, %d invalid; average net worth $%s",
			summary.Strategy.Name(),
			summary.Successes,
			summary.Failures,
			summary.Invalid,
			summary.AverageNetWorth.StringFixed(0),
		)
	}

	endProfile()
	log.Infof("sweep finished in %dms: %s", *profile.TotalMs, profile)

	return sweep, nil
}

func (h *simulatorHandler) simulate(ctx context.Context, scenario domain.Scenario, fingerprint string, job simulationJob, phase *domain.Phase) (domain.Result, error) {
	log := logger.FromContext(ctx)

	key := ""
	if h.ResultCacheRepository != nil {
		key = repository.ResultCacheKey(fingerprint, h.MarketDataRepository.Fingerprint(), job.strategy, job.start)
		cached, err := h.ResultCacheRepository.Get(ctx, key)
		if err != nil {
			log.Warnf("failed to read result cache: %s", err.Error())
		} else if cached != nil {
			phase.CountRun(true)
			return *cached, nil
		}
	}

	result, err := NewSimulation(scenario, job.strategy, h.MarketDataRepository).Run(ctx, job.start)
	if err != nil {
		return result, err
	}
	phase.CountRun(false)

	if h.ResultCacheRepository != nil {
		if err := h.ResultCacheRepository.Set(ctx, key, result); err != nil {
			log.Warnf("failed to write result cache: %s", err.Error())
		}
	}
	return result, nil
}
