package starmap

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"uqm-starseed/internal/random"
	"uqm-starseed/internal/shared/config"
	"uqm-starseed/internal/shared/errors"
)

// ErrTimeout means no galaxy could be seeded within the budget
var ErrTimeout = stderrors.New("seeding timed out")

// Request describes one seeding run
type Request struct {
	Seed uint32
	// Type is one of the config.SeedType constants; empty means the
	// configured default
	Type string
	// Loading seeds exactly Seed with the tolerant budget; a new game
	// moves on to the next seed when one fails
	Loading bool
	// Progress is told about every attempt and placement high-water mark
	Progress func(Progress)
}

type Progress struct {
	Attempt int    `json:"attempt"`
	Seed    uint32 `json:"seed"`
	Placed  int    `json:"placed"`
}

// Result is a seeded galaxy and how it came about. Galaxy.Seed is the seed
// actually used.
type Result struct {
	Galaxy    *Galaxy       `json:"-"`
	Requested uint32        `json:"requested"`
	Attempts  int           `json:"attempts"`
	Elapsed   time.Duration `json:"elapsed"`
}

type Service struct {
	cfg         config.SeedingConfig
	catalog     []Star
	constraints []PlotConstraint
	logger      *slog.Logger
}

// NewService loads the catalog and constraint overrides named in cfg
func NewService(cfg config.SeedingConfig, logger *slog.Logger) (*Service, error) {
	logger = logger.With("component", "starmap_service")
	logger.Debug("Initializing starmap service")

	catalog, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load star catalog: %w", err)
	}
	constraints, err := LoadConstraints(cfg.ConstraintsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load plot constraints: %w", err)
	}

	if cfg.StarFactor <= 0 {
		cfg.StarFactor = DefaultStarFactor
	}
	if cfg.NewGameRetries < 1 {
		cfg.NewGameRetries = 1
	}
	if len(catalog) > 1 && gcd(cfg.StarFactor, len(catalog)) != 1 {
		return nil, errors.Validationf("star factor %d shares a divisor with the %d catalog stars",
			cfg.StarFactor, len(catalog))
	}

	logger.Info("Starmap service ready",
		"stars", len(catalog),
		"constraints", len(constraints),
		"seed_type", cfg.SeedType,
	)

	return &Service{
		cfg:         cfg,
		catalog:     catalog,
		constraints: constraints,
		logger:      logger,
	}, nil
}

// Catalog returns a copy of the star catalog in use
func (s *Service) Catalog() []Star {
	return append([]Star(nil), s.catalog...)
}

// layout builds the unseeded galaxy a run starts from
func (s *Service) layout(seed uint32, seedType string) (*Galaxy, error) {
	g := &Galaxy{Seed: seed, Type: seedType, Stars: s.Catalog()}
	switch seedType {
	case config.SeedTypeNone:
		DefaultPlot(g)
	case config.SeedTypeMRQ:
		InitMelnormeRainbow(g)
	case config.SeedTypeStar:
		g.Plots.Reset()
		g.Plots.Apply(s.constraints)
	default:
		return nil, errors.Validationf("unknown seed type %q", seedType)
	}
	return g, nil
}

// Seed builds a galaxy for req. A galaxy that cannot be seeded within the
// budget yields a timeout error wrapping ErrTimeout.
func (s *Service) Seed(ctx context.Context, req Request) (*Result, error) {
	seedType := req.Type
	if seedType == "" {
		seedType = s.cfg.SeedType
	}
	logger := s.logger.With("operation", "seed", "seed", req.Seed, "seed_type", seedType, "loading", req.Loading)

	base, err := s.layout(req.Seed, seedType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if seedType == config.SeedTypeNone {
		DefaultQuasispace(base)
		return &Result{Galaxy: base, Requested: req.Seed, Attempts: 1, Elapsed: time.Since(start)}, nil
	}

	budget, tries := s.cfg.NewGameBudget, s.cfg.NewGameRetries
	if req.Loading {
		budget, tries = s.cfg.LoadBudget, 1
	}

	seed := req.Seed
	for attempt := 1; attempt <= tries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g := base.Clone()
		g.Seed = seed
		rng := random.New(seed)
		SeedStarmap(g.Stars, rng)

		solver := NewSolver(g, rng)
		solver.Budget = budget
		solver.StarFactor = s.cfg.StarFactor
		solver.RelatedThreshold = s.cfg.RelatedThreshold
		solver.Logger = s.logger
		solver.Done = ctx.Done()
		if req.Progress != nil {
			req.Progress(Progress{Attempt: attempt, Seed: seed})
			solver.Progress = func(placed int) {
				req.Progress(Progress{Attempt: attempt, Seed: seed, Placed: placed})
			}
		}

		if solver.SeedPlot() == Success {
			SeedQuasispace(g, rng)
			logger.Info("Galaxy seeded", "used_seed", seed, "attempts", attempt, "elapsed", time.Since(start))
			return &Result{Galaxy: g, Requested: req.Seed, Attempts: attempt, Elapsed: time.Since(start)}, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Warn("Seed timed out", "tried_seed", seed, "attempt", attempt, "budget", budget)
		seed++
	}

	return nil, errors.WrapTimeout(fmt.Sprintf("no galaxy for seed %d after %d attempts", req.Seed, tries), ErrTimeout)
}
