package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := New()
	is.Equal(cfg.GetString("solver-strategy"), "incremental")
	is.Equal(cfg.GetString("solver-scorer"), "tilecount")
	is.Equal(cfg.GetDuration("exhaustive-budget"), 3*time.Second)
	is.Equal(cfg.GetInt("hand-size"), 14)
}

func TestEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("RUMMAGE_SOLVER_STRATEGY", "exhaustive")
	cfg := New()
	is.Equal(cfg.GetString("solver-strategy"), "exhaustive")
}

func TestRuntimeSetWins(t *testing.T) {
	is := is.New(t)
	cfg := New()
	cfg.Set("selfplay-games", 3)
	is.Equal(cfg.GetInt("selfplay-games"), 3)
}
