// Package session ties a seeded galaxy to the persistence context of one
// game. Nothing here is global: two sessions never share state.
package session

import (
	"context"
	"io"
	"log/slog"

	"uqm-starseed/internal/clock"
	"uqm-starseed/internal/fleet"
	"uqm-starseed/internal/gamestate"
	"uqm-starseed/internal/grpinfo"
	"uqm-starseed/internal/random"
	"uqm-starseed/internal/save"
	"uqm-starseed/internal/shared/config"
	"uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/starmap"
	"uqm-starseed/internal/statefile"
)

// Seeder produces seeded galaxies
type Seeder interface {
	Seed(ctx context.Context, req starmap.Request) (*starmap.Result, error)
}

type Session struct {
	cfg    config.Config
	seeder Seeder
	logger *slog.Logger

	// Galaxy is nil until a game is started or loaded
	Galaxy *starmap.Galaxy
	Game   *save.Game
}

// New builds a session with its own seeding service
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	svc, err := starmap.NewService(cfg.Seeding, logger)
	if err != nil {
		return nil, err
	}
	return NewWithSeeder(cfg, svc, logger), nil
}

// NewWithSeeder builds a session around a seeder shared with other sessions
func NewWithSeeder(cfg *config.Config, seeder Seeder, logger *slog.Logger) *Session {
	return &Session{
		cfg:    *cfg,
		seeder: seeder,
		logger: logger.With("component", "session"),
	}
}

func (s *Session) newGame(seed uint32) *save.Game {
	files := statefile.NewStore(s.cfg.Persistence.MaxStateFileSize, s.logger)
	clk := clock.New()
	rng := random.New(seed)
	roster := fleet.DefaultRoster()
	state := gamestate.New()

	return &save.Game{
		Global: save.DefaultGlobalState(),
		Clock:  clk,
		State:  state,
		Roster: roster,
		Groups: grpinfo.NewManager(files, clk, rng, roster, state, s.logger),
		Files:  files,
		RNG:    rng,
		Logger: s.logger,
	}
}

// fuel is counted in hundredths of a unit
const fuelTankScale = 100

// startingSIS is the flagship as it leaves Earth orbit
func startingSIS(g *starmap.Galaxy) save.SISState {
	sis := save.SISState{
		FuelOnBoard:   10 * fuelTankScale,
		NumLanders:    1,
		ShipName:      "Vindicator",
		CommanderName: "Zelnick",
		Seed:          g.Seed,
	}
	if sol, ok := g.PlotPoint(starmap.Sol); ok {
		sis.LogX, sis.LogY = sol.X, sol.Y
	}
	return sis
}

// StartNewGame seeds a galaxy and builds a fresh persistence context for
// it. The session is only replaced once both are ready.
func (s *Session) StartNewGame(ctx context.Context, seed uint32) error {
	logger := s.logger.With("operation", "StartNewGame", "seed", seed)

	res, err := s.seeder.Seed(ctx, starmap.Request{Seed: seed})
	if err != nil {
		logger.Error("Failed to seed galaxy", "error", err)
		return err
	}

	g := s.newGame(res.Galaxy.Seed)
	if err := s.initFiles(g, res.Galaxy); err != nil {
		logger.Error("Failed to initialise state files", "error", err)
		return err
	}
	g.Roster.SeedFleets(res.Galaxy)
	g.SIS = startingSIS(res.Galaxy)
	g.Global.CurrentActivity = save.InHyperspace

	s.replace(res.Galaxy, g)
	logger.Info("New game started",
		"galaxy_seed", res.Galaxy.Seed,
		"attempts", res.Attempts,
		"elapsed", res.Elapsed)
	return nil
}

func (s *Session) initFiles(g *save.Game, gal *starmap.Galaxy) error {
	if err := g.Files.InitPlanetInfo(len(gal.Stars)); err != nil {
		return errors.WrapInternal("init scan info", err)
	}
	if err := g.Groups.InitGroupInfo(true); err != nil {
		return errors.WrapInternal("init group info", err)
	}
	return nil
}

func (s *Session) requireGame() error {
	if s.Game == nil || s.Galaxy == nil {
		return errors.Conflictf("no game in progress")
	}
	return nil
}

// Save writes the current game as a save file
func (s *Session) Save(w io.Writer, name string) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	s.Game.SIS.Seed = s.Galaxy.Seed
	return save.Save(w, s.Game, name)
}

// Load reads a save file into a fresh persistence context and reseeds the
// galaxy from the seed it records. On failure the session keeps its
// current game.
func (s *Session) Load(ctx context.Context, r io.Reader) error {
	logger := s.logger.With("operation", "Load")

	g := s.newGame(random.DefaultSeed)
	if err := g.Groups.InitGroupInfo(true); err != nil {
		return errors.WrapInternal("init group info", err)
	}
	if err := save.Load(r, g); err != nil {
		logger.Error("Failed to read save", "error", err)
		return err
	}

	seed := g.SIS.Seed
	res, err := s.seeder.Seed(ctx, starmap.Request{Seed: seed, Loading: true})
	if err != nil {
		logger.Error("Failed to reseed saved galaxy", "seed", seed, "error", err)
		return err
	}

	// fleets come back from the race queue, so they are not reseeded
	if g.Star != nil {
		ref := res.Galaxy.FindNearestStar(g.Star.Point)
		if ref.Valid() && res.Galaxy.Stars[ref].Point == g.Star.Point {
			g.Groups.EnterSystem(uint16(ref), *g.Star, nil)
		} else {
			logger.Warn("Saved star is not in the reseeded galaxy", "x", g.Star.X, "y", g.Star.Y)
		}
	}

	s.replace(res.Galaxy, g)
	logger.Info("Game loaded", "seed", seed, "activity", g.NextActivity)
	return nil
}

// EnterStar makes ref the current star. sys may be nil when the system
// layout is unknown.
func (s *Session) EnterStar(ref starmap.StarRef, sys grpinfo.SolarSystem) error {
	if err := s.requireGame(); err != nil {
		return err
	}
	if !ref.Valid() || int(ref) >= len(s.Galaxy.Stars) {
		return errors.Validationf("no star %d", ref)
	}
	star := s.Galaxy.Stars[ref]
	s.Game.Star = &star
	s.Game.Groups.EnterSystem(uint16(ref), star, sys)
	s.Game.Global.CurrentActivity = save.InInterplanetary
	return nil
}

// LeaveStar returns to hyperspace
func (s *Session) LeaveStar() {
	if s.Game == nil {
		return
	}
	s.Game.Star = nil
	s.Game.Global.CurrentActivity = save.InHyperspace
}

// Preview seeds a galaxy without touching the session
func (s *Session) Preview(ctx context.Context, seed uint32, seedType string) (*starmap.Result, error) {
	return s.seeder.Seed(ctx, starmap.Request{Seed: seed, Type: seedType})
}

// replace installs a new galaxy and game and frees the group stores of the
// game it supersedes
func (s *Session) replace(galaxy *starmap.Galaxy, g *save.Game) {
	if old := s.Game; old != nil && old.Groups != nil {
		old.Groups.UninitGroupInfo()
	}
	s.Galaxy, s.Game = galaxy, g
}
