// Command gen-corpus writes a synthetic season-per-directory corpus and,
// optionally, checks a running server's totals against it.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/matchdb/internal/testcorpus"
	"github.com/okian/matchdb/pkg/logger"
)

const (
	defaultOut     = "matchdata"
	defaultTimeout = 10 * time.Second
	runTimeout     = 5 * time.Minute
)

func main() {
	def := testcorpus.DefaultConfig()
	var (
		out         = flag.String("out", defaultOut, "Directory to write the corpus into")
		seasons     = flag.Int("seasons", def.Seasons, "Number of season directories")
		firstYear   = flag.Int("first-year", def.FirstYear, "Start year of the first season")
		tournaments = flag.Int("tournaments", def.Tournaments, "Tournaments per season")
		teams       = flag.Int("teams", def.TeamsPerTournament, "Teams per tournament")
		rounds      = flag.Int("rounds", def.Rounds, "Rounds per tournament")
		singleEvery = flag.Int("single-year-every", def.SingleYearEvery, "Write every Nth season as a single-year directory (0 disables)")
		junk        = flag.Bool("junk", false, "Add undecodable files and a malformed directory")
		seed        = flag.Uint64("seed", def.Seed, "Random seed")
		verifyURL   = flag.String("verify-url", "", "Base URL of a server loaded with this corpus; totals are checked when set")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout for verification")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}
	l := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	corpus, exp := testcorpus.Generate(testcorpus.Config{
		Seasons:            *seasons,
		FirstYear:          *firstYear,
		Tournaments:        *tournaments,
		TeamsPerTournament: *teams,
		Rounds:             *rounds,
		SingleYearEvery:    *singleEvery,
		Junk:               *junk,
		Seed:               *seed,
	})

	if err := testcorpus.Write(ctx, *out, corpus); err != nil {
		l.Error(ctx, "failed to write corpus", logger.String("out", *out), logger.Error(err))
		os.Exit(1)
	}
	l.Info(ctx, "corpus written",
		logger.String("out", *out),
		logger.Int("seasons", exp.Seasons),
		logger.Int("matches", exp.Matches),
		logger.Int("tournaments", exp.Tournaments),
		logger.Int("teams", exp.Teams),
	)

	if *verifyURL == "" {
		return
	}
	if err := testcorpus.Verify(ctx, *verifyURL, *timeout, exp); err != nil {
		l.Error(ctx, "verification failed", logger.String("url", *verifyURL), logger.Error(err))
		os.Exit(1)
	}
	l.Info(ctx, "server totals match corpus", logger.String("url", *verifyURL))
}
