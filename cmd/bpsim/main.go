// bpsim replays a recorded conditional-branch trace against a chosen
// branch predictor and writes aggregate prediction statistics.
//
// Usage:
//
//	bpsim -trace branches.trace -BP_type tournament -num_BP_entries 1024 -o BP_stats.out
//
// Flags override the optional YAML config file and BPSIM_* environment
// variables. The -BP_type, -num_BP_entries and -o flag names are kept
// for compatibility with existing run scripts.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MaemoWong/branchsim/config"
	"github.com/MaemoWong/branchsim/predictor"
	"github.com/MaemoWong/branchsim/sim"
)

func main() {
	var (
		configFile  = flag.String("config", "", "optional YAML config file")
		kind        = flag.String("BP_type", "", "predictor type: always_taken, local, gshare, tournament")
		entries     = flag.Uint64("num_BP_entries", 0, "number of entries in the branch predictor")
		tracePath   = flag.String("trace", "", "branch trace file to replay")
		output      = flag.String("o", "", "output statistics file")
		plotPath    = flag.String("plot", "", "optional window-accuracy chart PNG")
		maxInstr    = flag.Uint64("max_instructions", 0, "stop after this many instructions (0 = whole trace)")
		heartbeat   = flag.Uint64("heartbeat", 0, "log progress every N instructions")
		statsWindow = flag.Int("stats_window", 0, "branches per accuracy window")
		logLevel    = flag.String("log_level", "", "zerolog level (trace..error)")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Explicit flags win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "BP_type":
			cfg.Predictor = *kind
		case "num_BP_entries":
			cfg.Entries = *entries
		case "trace":
			cfg.Trace = *tracePath
		case "o":
			cfg.Output = *output
		case "plot":
			cfg.Plot = *plotPath
		case "max_instructions":
			cfg.MaxInstructions = *maxInstr
		case "heartbeat":
			cfg.HeartbeatEvery = *heartbeat
		case "stats_window":
			cfg.StatsWindow = *statsWindow
		case "log_level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("log_level", cfg.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Trace == "" {
		log.Fatal().Msg("no trace file given (-trace)")
	}

	pred, err := predictor.New(cfg.Predictor, cfg.Entries)
	if err != nil {
		log.Fatal().Err(err).Msg("no such type of branch predictor, simulation will be terminated")
	}
	log.Info().
		Str("predictor", cfg.Predictor).
		Uint64("entries", cfg.Entries).
		Uint64("max_instructions", cfg.MaxInstructions).
		Msg("starting simulation")

	f, err := os.Open(cfg.Trace)
	if err != nil {
		log.Fatal().Err(err).Str("trace", cfg.Trace).Msg("failed to open trace")
	}
	defer f.Close()

	driver := sim.NewDriver(pred, sim.Options{
		MaxInstructions: cfg.MaxInstructions,
		HeartbeatEvery:  cfg.HeartbeatEvery,
		StatsWindow:     cfg.StatsWindow,
	})
	res, err := driver.Run(sim.NewTraceReader(f))
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	report := sim.NewReport(cfg.Predictor, cfg.Entries, res)
	if err := report.WriteFile(cfg.Output); err != nil {
		log.Fatal().Err(err).Str("output", cfg.Output).Msg("failed to write report")
	}

	if cfg.Plot != "" {
		if err := sim.RenderAccuracyChart(cfg.Plot, res.WindowAccuracies, cfg.StatsWindow); err != nil {
			log.Fatal().Err(err).Str("plot", cfg.Plot).Msg("failed to render chart")
		}
	}

	log.Info().
		Str("run_id", report.RunID).
		Uint64("branches", res.Counters.ConditionalBranches).
		Uint64("instructions", res.Counters.Instructions).
		Float64("accuracy", res.Counters.Accuracy()).
		Str("output", cfg.Output).
		Msg("simulation complete")
}
