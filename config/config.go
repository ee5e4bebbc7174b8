// Package config loads simulator configuration from defaults, an
// optional YAML file, and BPSIM_* environment variables, in increasing
// precedence.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/MaemoWong/branchsim/predictor"
	"github.com/MaemoWong/branchsim/sim"
)

// Config is the fully resolved simulator configuration.
type Config struct {
	Predictor       string
	Entries         uint64
	Trace           string
	Output          string
	Plot            string
	MaxInstructions uint64
	HeartbeatEvery  uint64
	StatsWindow     int
	LogLevel        string
}

// Defaults mirror the historical tool: always-taken predictor, 1024
// entries, BP_stats.out, a billion-instruction stop and a hundred-million
// instruction heartbeat.
func defaults(v *viper.Viper) {
	v.SetDefault("predictor", predictor.KindAlwaysTaken)
	v.SetDefault("entries", 1024)
	v.SetDefault("trace", "")
	v.SetDefault("output", "BP_stats.out")
	v.SetDefault("plot", "")
	v.SetDefault("max_instructions", sim.DefaultStopInstructions)
	v.SetDefault("heartbeat", sim.DefaultHeartbeatEvery)
	v.SetDefault("stats_window", sim.DefaultStatsWindow)
	v.SetDefault("log_level", "info")
}

// Load resolves the configuration. file may be empty, in which case only
// defaults and environment apply.
func Load(file string) (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("BPSIM")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", file)
		}
	}

	cfg := Config{
		Predictor:       v.GetString("predictor"),
		Entries:         v.GetUint64("entries"),
		Trace:           v.GetString("trace"),
		Output:          v.GetString("output"),
		Plot:            v.GetString("plot"),
		MaxInstructions: v.GetUint64("max_instructions"),
		HeartbeatEvery:  v.GetUint64("heartbeat"),
		StatsWindow:     v.GetInt("stats_window"),
		LogLevel:        v.GetString("log_level"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on any unusable setting so nothing is partially
// constructed downstream.
func (c Config) Validate() error {
	if err := predictor.ValidateKind(c.Predictor); err != nil {
		return err
	}
	if err := predictor.ValidateEntries(c.Entries); err != nil {
		return err
	}
	if c.Output == "" {
		return errors.New("output path must not be empty")
	}
	if c.HeartbeatEvery == 0 {
		return errors.New("heartbeat interval must be positive")
	}
	if c.StatsWindow <= 0 {
		return errors.New("stats window must be positive")
	}
	return nil
}
