package insight

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"pg-connect/pkg/logger"
)

type nopObserver struct{}

func (nopObserver) ObserveAICall(string, string) {}

// Service calls the generator once per request. Concurrent refreshes are not
// de-duplicated and the last response to arrive wins.
type Service struct {
	gen      Generator
	log      logger.Logger
	observer Observer
	timeout  time.Duration
	now      func() time.Time

	mu          sync.RWMutex
	latest      string
	generatedAt time.Time
	busy        atomic.Int32
}

func NewService(gen Generator, log logger.Logger, observer Observer, timeout time.Duration) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		gen:      gen,
		log:      log,
		observer: observer,
		timeout:  timeout,
		now:      time.Now,
	}
}

// AdminInsight never fails; problems come back as the fallback text.
func (s *Service) AdminInsight(ctx context.Context, dataContext string) string {
	s.busy.Add(1)
	defer s.busy.Add(-1)

	text := s.generate(ctx, KindInsight, insightPrompt(dataContext), InsightMissingKeyFallback, InsightErrorFallback)

	s.mu.Lock()
	s.latest = text
	s.generatedAt = s.now()
	s.mu.Unlock()
	return text
}

// RefreshAsync generates one insight in the background from whatever context
// build returns. The returned channel closes when it is done.
func (s *Service) RefreshAsync(build func(ctx context.Context) (string, error)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		dataContext, err := build(ctx)
		if err != nil {
			s.log.InternalError("insight.refresh: build context failed", err)
			return
		}
		s.AdminInsight(ctx, dataContext)
	}()
	return done
}

func (s *Service) Latest() Latest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := Latest{Text: s.latest, Busy: s.busy.Load() > 0}
	if !s.generatedAt.IsZero() {
		at := s.generatedAt
		latest.GeneratedAt = &at
	}
	return latest
}

// Blueprint returns generated code for a named component, or a fallback
// comment when generation is unavailable.
func (s *Service) Blueprint(ctx context.Context, name string) (string, error) {
	component, err := LookupComponent(name)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, KindBlueprint, blueprintPrompt(component), BlueprintMissingKeyFallback, BlueprintErrorFallback), nil
}

func (s *Service) generate(ctx context.Context, kind, prompt, missingKey, failed string) string {
	if s.gen == nil || !s.gen.Configured() {
		s.observer.ObserveAICall(kind, OutcomeUnavailable)
		return missingKey
	}

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.log.Warn("insight.generate: canceled", "kind", kind)
		} else {
			s.log.InternalError("insight.generate: failed", err, "kind", kind)
		}
		s.observer.ObserveAICall(kind, OutcomeError)
		return failed
	}
	s.observer.ObserveAICall(kind, OutcomeOK)
	return text
}
