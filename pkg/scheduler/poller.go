// Package scheduler re-runs verification for every firm on a fixed interval.
package scheduler

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"agromonitor/entities"
	"agromonitor/pkg/logger"
	"agromonitor/pkg/metrics"
	"agromonitor/pkg/verify/service"
)

// FirmLister enumerates the firms to poll.
type FirmLister interface {
	ListFirms(ctx context.Context) ([]entities.Firm, error)
}

type Config struct {
	Verifier service.Verifier
	Firms    FirmLister
	Interval time.Duration
	// RunTimeout bounds one pass over all firms. Zero means Interval.
	RunTimeout time.Duration
}

// Poller runs one pass at a time; a pass that outlasts the interval delays
// the next tick instead of overlapping it.
type Poller struct {
	verifier service.Verifier
	firms    FirmLister
	interval time.Duration
	timeout  time.Duration

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewPoller(cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 60 * time.Second
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = cfg.Interval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		verifier: cfg.Verifier,
		firms:    cfg.Firms,
		interval: cfg.Interval,
		timeout:  cfg.RunTimeout,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (p *Poller) Start() {
	log := logger.WithComponent("scheduler")
	log.Info().
		Dur("interval", p.interval).
		Msg("starting verification poller")
	p.wg.Add(1)
	go p.loop()
}

// Stop cancels the running pass, if any, and waits for the loop to exit.
func (p *Poller) Stop() {
	log := logger.WithComponent("scheduler")
	log.Info().Msg("stopping verification poller")
	p.cancel()
	p.wg.Wait()
	log.Info().Msg("verification poller stopped")
}

func (p *Poller) loop() {
	defer p.wg.Done()
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-t.C:
			p.RunOnce()
		}
	}
}

// RunOnce verifies every firm sequentially.
func (p *Poller) RunOnce() {
	log := logger.WithComponent("scheduler")
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("poll pass panic recovered")
			metrics.PanicsRecovered.WithLabelValues("scheduler").Inc()
		}
	}()

	ctx, cancel := context.WithTimeout(service.WithTrigger(p.ctx, "poll"), p.timeout)
	defer cancel()

	firms, err := p.firms.ListFirms(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("list firms failed, skipping pass")
		return
	}
	for _, f := range firms {
		if ctx.Err() != nil {
			return
		}
		rep, err := p.verifier.VerifyAll(ctx, f.FirmID, nil)
		if err != nil {
			log.Warn().Err(err).Uint("firm_id", f.FirmID).Msg("poll verification failed")
			continue
		}
		if rep.Incomplete {
			log.Warn().
				Uint("firm_id", f.FirmID).
				Str("run_id", rep.RunID).
				Int("errors", len(rep.Errors)).
				Msg("verification incomplete")
		}
	}
}
