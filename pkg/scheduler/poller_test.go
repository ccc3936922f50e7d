package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"agromonitor/entities"
	"agromonitor/pkg/verify/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type staticFirms struct {
	firms []entities.Firm
	err   error
}

func (s staticFirms) ListFirms(context.Context) ([]entities.Firm, error) { return s.firms, s.err }

type countingVerifier struct {
	service.Verifier
	mu       sync.Mutex
	firms    []uint
	triggers []string
	panicOn  uint
}

func (v *countingVerifier) VerifyAll(ctx context.Context, firmID uint, _ *uint) (*service.Report, error) {
	if firmID == v.panicOn {
		panic("boom")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.firms = append(v.firms, firmID)
	v.triggers = append(v.triggers, service.TriggerFrom(ctx))
	return &service.Report{FirmID: firmID, Incomplete: firmID == 2, Errors: []string{"x"}}, nil
}

func (v *countingVerifier) calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.firms)
}

func TestRunOnceVisitsEveryFirm(t *testing.T) {
	v := &countingVerifier{}
	p := NewPoller(Config{Verifier: v, Firms: staticFirms{firms: []entities.Firm{{FirmID: 1}, {FirmID: 2}}}})
	defer p.Stop()

	p.RunOnce()
	assert.Equal(t, []uint{1, 2}, v.firms)
	assert.Equal(t, []string{"poll", "poll"}, v.triggers)
}

func TestRunOnceSurvivesListErrorAndPanic(t *testing.T) {
	v := &countingVerifier{panicOn: 1}
	p := NewPoller(Config{Verifier: v, Firms: staticFirms{err: errors.New("db down")}})
	defer p.Stop()
	p.RunOnce()
	assert.Zero(t, v.calls())

	p.firms = staticFirms{firms: []entities.Firm{{FirmID: 1}}}
	assert.NotPanics(t, p.RunOnce)
}

func TestPollerTicksAndStops(t *testing.T) {
	v := &countingVerifier{}
	p := NewPoller(Config{Verifier: v, Firms: staticFirms{firms: []entities.Firm{{FirmID: 7}}}, Interval: 10 * time.Millisecond})
	p.Start()
	assert.Eventually(t, func() bool { return v.calls() >= 2 }, time.Second, 5*time.Millisecond)
	p.Stop()
}
