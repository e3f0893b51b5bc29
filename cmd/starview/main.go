// Command starview seeds a galaxy and shows it in the terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"uqm-starseed/internal/shared/config"
	"uqm-starseed/internal/shared/logger"
	"uqm-starseed/internal/starmap"
	"uqm-starseed/internal/starview"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	seed := flag.Uint("seed", uint(cfg.Seeding.DefaultSeed), "starmap seed")
	seedType := flag.String("type", cfg.Seeding.SeedType, "seed type: star, mrq or none")
	logPath := flag.String("log", "", "write logs to this file")
	verify := flag.Bool("verify", false, "print constraint problems and exit")
	flag.Parse()

	if err := run(cfg, uint32(*seed), *seedType, *logPath, *verify); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, seed uint32, seedType, logPath string, verify bool) error {
	log := logger.Discard()
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return err
		}
		defer f.Close()
		log = logger.New(f, cfg.Logging)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := starmap.NewService(cfg.Seeding, log)
	if err != nil {
		return err
	}
	res, err := svc.Seed(ctx, starmap.Request{
		Seed: seed,
		Type: seedType,
		Progress: func(p starmap.Progress) {
			fmt.Fprintf(os.Stderr, "\rseed %d attempt %d: %d/%d plots", p.Seed, p.Attempt, p.Placed, starmap.NumPlots)
		},
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	log.Info("Galaxy seeded", "seed", res.Galaxy.Seed, "attempts", res.Attempts, "elapsed", res.Elapsed)

	if verify {
		if err := starmap.Verify(res.Galaxy); err != nil {
			return err
		}
		fmt.Printf("seed %d (%s): all constraints hold\n", res.Galaxy.Seed, res.Galaxy.Type)
		return nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	slog.SetDefault(log)
	if err := starview.New(screen, res.Galaxy).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
