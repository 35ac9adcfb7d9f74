package app

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/forms"
	"github.com/jrsteele09/go-barber-client/internal/config"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/internal/logger"
	"github.com/jrsteele09/go-barber-client/schedule"
	"github.com/jrsteele09/go-barber-client/sessions"
	"github.com/jrsteele09/go-barber-client/storage"
	"github.com/jrsteele09/go-barber-client/ui"
)

// App is everything a command needs, built once per process. The session lives here and is
// passed to commands explicitly.
type App struct {
	Config   config.Config
	Log      zerolog.Logger
	Repo     storage.Repo
	API      *api.Client
	Sessions *sessions.Store
	Forms    *forms.Validator
	Format   *schedule.Formatter
	Booker   *schedule.Booker
	Out      *ui.Printer
	Metrics  *prometheus.Registry
}

type options struct {
	log  *zerolog.Logger
	repo storage.Repo
}

type Option func(*options)

// WithLogger replaces the logger built from the config.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = &l }
}

// WithRepo replaces the storage backend named by the config.
func WithRepo(r storage.Repo) Option {
	return func(o *options) { o.repo = r }
}

// New wires the client together and rehydrates the persisted session. A stored session that
// cannot be read is logged and the app starts signed out.
func New(ctx context.Context, cfg config.Config, out io.Writer, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.New(cfg.GetLogLevel(), cfg.GetEnv())
	if o.log != nil {
		log = *o.log
	}

	repo := o.repo
	if repo == nil {
		var err error
		if repo, err = storage.Open(cfg); err != nil {
			return nil, apperrors.Wrapf(err, "open session storage")
		}
	}

	reg := prometheus.NewRegistry()
	client, err := api.New(cfg.GetAPIURL(),
		api.WithTimeout(cfg.GetTimeout()),
		api.WithLogger(log),
		api.WithRegisterer(reg),
	)
	if err != nil {
		_ = repo.Close()
		return nil, apperrors.Wrapf(err, "create api client")
	}

	store := sessions.NewStore(repo, client, log)
	client.OnUnauthorized(store.SignOut)
	if err := store.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("stored session discarded")
	}

	format := schedule.NewFormatter(cfg.GetLocale(), cfg.GetLocation())
	return &App{
		Config:   cfg,
		Log:      log,
		Repo:     repo,
		API:      client,
		Sessions: store,
		Forms:    forms.New(cfg.GetLocale()),
		Format:   format,
		Booker:   schedule.NewBooker(client, format.Location()),
		Out:      ui.NewPrinter(out, format, cfg.GetLocale()),
		Metrics:  reg,
	}, nil
}

// Host is the client the API should treat this session as.
func (a *App) Host() api.Host {
	if a.Config.GetHost() == config.HostMobile {
		return api.HostMobile
	}
	return api.HostWeb
}

// Close releases the storage backend. The session itself stays persisted.
func (a *App) Close() error {
	return a.Repo.Close()
}
