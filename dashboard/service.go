package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spektr-org/eventboard/assets"
	"github.com/spektr-org/eventboard/loader"
	"github.com/spektr-org/eventboard/registrants"
)

// Service rebuilds the dashboard from the source file on every request.
// Loads go through a cache keyed by the file's modification time.
type Service struct {
	dataPath string
	logoPath string
	title    string
	cache    *loader.Cache
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogo sets the logo file shown above the dashboard.
func WithLogo(path string) Option {
	return func(s *Service) { s.logoPath = path }
}

// WithTitle sets the dashboard heading.
func WithTitle(title string) Option {
	return func(s *Service) { s.title = title }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCache shares a loader cache between services.
func WithCache(c *loader.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// NewService returns a Service reading dataPath.
func NewService(dataPath string, opts ...Option) *Service {
	s := &Service{
		dataPath: dataPath,
		title:    DefaultTitle,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "dashboard"))
	if s.cache == nil {
		s.cache = loader.NewCache(loader.New(s.logger))
	}
	return s
}

// Dataset returns the loaded source dataset.
func (s *Service) Dataset(ctx context.Context) (registrants.Dataset, error) {
	return s.cache.Load(ctx, s.dataPath)
}

// Options returns the selectable chapter groups and event types.
func (s *Service) Options(ctx context.Context) (registrants.Options, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return registrants.Options{}, err
	}
	return registrants.OptionsOf(ds), nil
}

// DefaultCriteria returns the selection a fresh session starts with.
func (s *Service) DefaultCriteria(ctx context.Context) (registrants.Criteria, error) {
	opts, err := s.Options(ctx)
	if err != nil {
		return registrants.Criteria{}, err
	}
	return opts.DefaultCriteria(), nil
}

// Build loads the dataset and computes the snapshot for c. A missing logo
// becomes a warning; a load failure is returned.
func (s *Service) Build(ctx context.Context, c registrants.Criteria) (*Snapshot, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := Build(ds, c, s.title, s.logger)
	if err != nil {
		return nil, err
	}
	if s.logoPath != "" {
		if _, err := s.Logo(); err != nil {
			var missing *assets.MissingError
			if errors.As(err, &missing) {
				snap.Warnings = append(snap.Warnings, missing.Warning())
			}
		}
	}
	return snap, nil
}

// Logo loads the configured logo. It fails with assets.ErrAssetMissing
// when none is configured or the file cannot be read.
func (s *Service) Logo() (*assets.Logo, error) {
	logo, err := assets.LoadLogo(s.logoPath)
	if err != nil {
		s.logger.Warn("logo unavailable", slog.String("path", s.logoPath), slog.Any("error", err))
		return nil, err
	}
	return logo, nil
}
