package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Phase is one timed stage of a sweep. Runs may be counted from several
// goroutines while the phase is open.
type Phase struct {
	Name      string `json:"name"`
	ElapsedMs *int64 `json:"elapsedMs"`
	Runs      int64  `json:"runs"`
	Cached    int64  `json:"cached"`

	startTs time.Time
	runs    atomic.Int64
	cached  atomic.Int64
}

// CountRun records one finished simulation; cached runs were served
// without simulating.
func (p *Phase) CountRun(cached bool) {
	p.runs.Add(1)
	if cached {
		p.cached.Add(1)
	}
}

func (p *Phase) end() {
	if p.ElapsedMs != nil {
		return
	}
	t := time.Since(p.startTs).Milliseconds()
	p.ElapsedMs = &t
	p.Runs = p.runs.Load()
	p.Cached = p.cached.Load()
}

// Profile times the phases of one sweep in order. Starting and ending
// phases is not thread safe; counting runs is.
type Profile struct {
	Phases  []*Phase `json:"phases"`
	TotalMs *int64   `json:"totalMs"`

	startTs time.Time
}

func NewProfile() (*Profile, func()) {
	p := &Profile{
		Phases:  []*Phase{},
		startTs: time.Now(),
	}
	return p, p.End
}

// StartPhase closes the open phase, if any, and begins the next one.
func (p *Profile) StartPhase(name string) *Phase {
	if len(p.Phases) > 0 {
		p.Phases[len(p.Phases)-1].end()
	}
	phase := &Phase{
		Name:    name,
		startTs: time.Now(),
	}
	p.Phases = append(p.Phases, phase)
	return phase
}

func (p *Profile) End() {
	if len(p.Phases) > 0 {
		p.Phases[len(p.Phases)-1].end()
	}
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

func (p *Profile) String() string {
	parts := []string{}
	for _, phase := range p.Phases {
		if phase.ElapsedMs == nil {
			continue
		}
		part := fmt.Sprintf("%s %dms", phase.Name, *phase.ElapsedMs)
		if phase.Runs > 0 {
			part += fmt.Sprintf(" (%d runs, %d cached)", phase.Runs, phase.Cached)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	return json.Marshal(p)
}
