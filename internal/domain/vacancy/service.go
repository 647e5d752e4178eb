package vacancy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	"github.com/honeycarbs/vacancy-scanner/pkg/logging"
)

// ErrUnknownSource is returned when Fetch names a provider that is not registered
var ErrUnknownSource = errors.New("unknown vacancy source")

type Service interface {
	// Sources lists registered provider names in registration order
	Sources() []string
	Fetch(ctx context.Context, source, keyword string, count int) ([]domain.Vacancy, error)
	Save(ctx context.Context, path string, vacancies []domain.Vacancy) error
	Load(ctx context.Context, path string) ([]domain.Vacancy, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	providers []Provider
	repo      Repository
	logger    *logging.Logger
	clock     func() time.Time
}

// WithProviders sets vacancy providers
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = append(c.providers, providers...)
	}
}

// WithRepository sets the repository
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("vacancy.Service: repository is required")
	}
	if len(cfg.providers) == 0 {
		return nil, fmt.Errorf("vacancy.Service: at least one provider is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return newService(cfg.repo, cfg.providers, cfg.logger, cfg.clock), nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(repo Repository, providers []Provider, logger *logging.Logger) (Service, error) {
	return NewService(
		WithRepository(repo),
		WithProviders(providers...),
		WithLogger(logger),
	)
}

func newService(repo Repository, providers []Provider, logger *logging.Logger, clock func() time.Time) *service {
	byName := make(map[string]Provider, len(providers))
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		name := strings.ToLower(p.Name())
		if _, dup := byName[name]; dup {
			continue
		}
		byName[name] = p
		names = append(names, name)
	}

	return &service{
		providers: byName,
		names:     names,
		repo:      repo,
		logger:    logger,
		clock:     clock,
	}
}

type service struct {
	providers map[string]Provider
	names     []string
	repo      Repository
	logger    *logging.Logger
	clock     func() time.Time
}

// aliases accepted by Fetch besides the provider names
var sourceAliases = map[string]string{
	"hh": "headhunter",
	"sj": "superjob",
	"1":  "headhunter",
	"2":  "superjob",
}

func (s *service) Sources() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Fetch queries one provider
func (s *service) Fetch(ctx context.Context, source, keyword string, count int) ([]domain.Vacancy, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, &domain.ValidationError{Field: "keyword", Reason: "keyword is required"}
	}
	if count < 0 {
		return nil, &domain.ValidationError{Field: "count", Value: fmt.Sprint(count), Reason: "must not be negative"}
	}

	p, err := s.provider(source)
	if err != nil {
		return nil, err
	}

	fetchID := uuid.NewString()
	log := s.logger.With("fetch_id", fetchID, "source", p.Name())
	started := s.clock()

	log.Info("fetching vacancies", "keyword", keyword, "count", count)

	vacancies, err := p.Search(ctx, keyword, count)
	if err != nil {
		log.Error("fetch failed", "err", err)
		return nil, err
	}

	log.Info("fetch completed",
		"vacancies", len(vacancies),
		"elapsed", s.clock().Sub(started),
	)
	return vacancies, nil
}

func (s *service) provider(source string) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(source))
	if alias, ok := sourceAliases[name]; ok {
		name = alias
	}
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownSource, source, strings.Join(s.names, ", "))
	}
	return p, nil
}

func (s *service) Save(ctx context.Context, path string, vacancies []domain.Vacancy) error {
	if err := s.repo.Save(ctx, path, vacancies); err != nil {
		s.logger.Error("save failed", "path", path, "err", err)
		return err
	}
	s.logger.Info("vacancies saved", "path", path, "count", len(vacancies))
	return nil
}

func (s *service) Load(ctx context.Context, path string) ([]domain.Vacancy, error) {
	vacancies, err := s.repo.Load(ctx, path)
	if err != nil {
		s.logger.Warn("load failed", "path", path, "err", err)
		return nil, err
	}
	s.logger.Info("vacancies loaded", "path", path, "count", len(vacancies))
	return vacancies, nil
}
