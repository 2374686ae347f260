package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"pg-connect/internal/config"
	authdomain "pg-connect/internal/domain/auth"
	dashboarddomain "pg-connect/internal/domain/dashboard"
	feesdomain "pg-connect/internal/domain/fees"
	insightdomain "pg-connect/internal/domain/insight"
	messagesdomain "pg-connect/internal/domain/messages"
	residentsdomain "pg-connect/internal/domain/residents"
	roomsdomain "pg-connect/internal/domain/rooms"
	ticketsdomain "pg-connect/internal/domain/tickets"
	viewsdomain "pg-connect/internal/domain/views"
	"pg-connect/internal/events"
	"pg-connect/internal/genai"
	"pg-connect/internal/metrics"
	"pg-connect/internal/repository/inmemory"
	"pg-connect/internal/seed"
	"pg-connect/internal/store"
	"pg-connect/internal/transport/httpserver"
	"pg-connect/internal/transport/httpserver/handler"
	"pg-connect/pkg/logger"
)

const (
	slotTickets   = "tickets"
	slotResidents = "residents"
	slotMessages  = "messages"
	slotFees      = "fees"
)

type Collections struct {
	Residents *store.Collection[residentsdomain.Resident]
	Fees      *store.Collection[feesdomain.FeeRecord]
	Tickets   *store.Collection[ticketsdomain.SupportTicket]
	Messages  *store.Collection[messagesdomain.ChatMessage]
}

type App struct {
	cfg         config.Config
	log         logger.Logger
	backend     store.Backend
	publisher   *events.Publisher
	metrics     *metrics.Metrics
	collections Collections
	services    handler.Services
	router      http.Handler
	httpServer  *http.Server
}

// New opens the configured backend and builds the whole application.
func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	backend, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a, err := NewWithBackend(ctx, cfg, log, backend)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return a, nil
}

// NewWithBackend builds the application over an already opened backend,
// which the App then owns.
func NewWithBackend(ctx context.Context, cfg config.Config, log logger.Logger, backend store.Backend) (*App, error) {
	a := &App{cfg: cfg, log: log, backend: backend}

	var notifier store.Notifier
	if cfg.Events.NATSURL != "" {
		publisher, err := events.Connect(cfg.Events.NATSURL, cfg.Events.SubjectPrefix, log)
		if err != nil {
			// Change events are optional; the store works without them.
			log.InternalError("events: connect failed, continuing without change events", err, "url", cfg.Events.NATSURL)
		} else {
			log.Info("events: publishing slot changes", "url", cfg.Events.NATSURL)
			a.publisher = publisher
			notifier = publisher
		}
	}

	var recorder store.Recorder
	var observer insightdomain.Observer
	if cfg.MetricsEnabled {
		a.metrics = metrics.New()
		recorder = a.metrics
		observer = a.metrics
	}

	defaults := seed.MustLoad()
	opts := []store.Option{store.WithLogger(log), store.WithNotifier(notifier), store.WithRecorder(recorder)}
	prefix := cfg.Store.KeyPrefix
	a.collections = Collections{
		Residents: store.Open(ctx, backend, prefix+slotResidents, defaults.Residents, func(r residentsdomain.Resident) int64 { return r.ID }, opts...),
		Fees:      store.Open(ctx, backend, prefix+slotFees, defaults.Fees, func(f feesdomain.FeeRecord) int64 { return f.ID }, opts...),
		Tickets:   store.Open(ctx, backend, prefix+slotTickets, defaults.Tickets, func(t ticketsdomain.SupportTicket) int64 { return t.ID }, opts...),
		Messages:  store.Open(ctx, backend, prefix+slotMessages, defaults.Messages, func(m messagesdomain.ChatMessage) int64 { return m.ID }, opts...),
	}

	catalog := roomsdomain.NewCatalog(defaults.Rooms)
	fees := feesdomain.NewService(a.collections.Fees, cfg.Fees.InitialAmount)
	residents := residentsdomain.NewService(a.collections.Residents, fees)
	tickets := ticketsdomain.NewService(a.collections.Tickets)
	messages := messagesdomain.NewService(a.collections.Messages)
	dashboard := dashboarddomain.NewService(catalog, a.collections.Residents, a.collections.Fees, a.collections.Tickets, a.collections.Messages)

	auth, err := authdomain.NewService(inmemory.NewSessionStore(), residents, authdomain.AdminCredentials{
		Username:     cfg.Auth.AdminUsername,
		Password:     cfg.Auth.AdminPassword,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	}, cfg.Auth.SessionTTL)
	if err != nil {
		a.closeEvents()
		return nil, fmt.Errorf("auth: %w", err)
	}

	gen := genai.New(genai.Config{
		APIKey:  cfg.GenAI.APIKey,
		BaseURL: cfg.GenAI.BaseURL,
		Model:   cfg.GenAI.Model,
		Timeout: cfg.GenAI.Timeout,
	})
	if !gen.Configured() {
		log.Warn("genai: no API key configured, insights and blueprints will use fallbacks")
	}
	insight := insightdomain.NewService(gen, log, observer, gen.Timeout())

	a.services = handler.Services{
		Auth:      auth,
		Residents: residents,
		Fees:      fees,
		Tickets:   tickets,
		Messages:  messages,
		Dashboard: dashboard,
		Insight:   insight,
		Views:     viewsdomain.NewRouter(auth, dashboard, insight),
	}
	a.router = httpserver.NewRouter(cfg, handler.New(a.services, log), auth, a.metrics, log)
	a.httpServer = httpserver.New(cfg, a.router)
	return a, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Services() handler.Services {
	return a.services
}

// Seed persists every collection. With reset the seed directory replaces
// whatever is stored; otherwise the current contents are written as they are.
func (a *App) Seed(ctx context.Context, reset bool) error {
	data := seed.MustLoad()
	if !reset {
		data = seed.Data{}
		var err error
		if data.Residents, err = a.collections.Residents.List(ctx); err != nil {
			return err
		}
		if data.Fees, err = a.collections.Fees.List(ctx); err != nil {
			return err
		}
		if data.Tickets, err = a.collections.Tickets.List(ctx); err != nil {
			return err
		}
		if data.Messages, err = a.collections.Messages.List(ctx); err != nil {
			return err
		}
	}

	return errors.Join(
		a.collections.Residents.Reset(ctx, data.Residents),
		a.collections.Fees.Reset(ctx, data.Fees),
		a.collections.Tickets.Reset(ctx, data.Tickets),
		a.collections.Messages.Reset(ctx, data.Messages),
	)
}

func (a *App) closeEvents() {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Close(); err != nil {
		a.log.Error("events: close failed", "err", err)
	}
}

func (a *App) Close() error {
	a.closeEvents()
	if a.backend == nil {
		return nil
	}
	return a.backend.Close()
}
