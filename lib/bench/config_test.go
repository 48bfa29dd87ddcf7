package bench

import (
	"testing"

	"github.com/ValentinKolb/mapbench/lib/cmap"
)

func validConfig() Config {
	return Config{
		Model:      cmap.ModelSharded,
		Threads:    4,
		Iterations: 40_000,
		Keys:       100,
		ReadRatio:  0.9,
		Seed:       42,
		Shards:     8,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown model", func(c *Config) { c.Model = "treap" }, true},
		{"zero threads", func(c *Config) { c.Threads = 0 }, true},
		{"negative threads", func(c *Config) { c.Threads = -1 }, true},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, false},
		{"negative iterations", func(c *Config) { c.Iterations = -1 }, true},
		{"zero keys", func(c *Config) { c.Keys = 0 }, true},
		{"read ratio below range", func(c *Config) { c.ReadRatio = -0.1 }, true},
		{"read ratio above range", func(c *Config) { c.ReadRatio = 1.1 }, true},
		{"read ratio zero", func(c *Config) { c.ReadRatio = 0 }, false},
		{"read ratio one", func(c *Config) { c.ReadRatio = 1 }, false},
		{"sharded zero shards", func(c *Config) { c.Shards = 0 }, true},
		{"syncmap ignores shards", func(c *Config) { c.Model = cmap.ModelSyncMap; c.Shards = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
			if tt.wantErr {
				if _, ok := err.(*ConfigError); !ok {
					t.Errorf("expected *ConfigError, got %T", err)
				}
			}
		})
	}
}

func TestConfigPartitioning(t *testing.T) {
	tests := []struct {
		iterations int
		threads    int
		perWorker  int
		effective  int
	}{
		// evenly divisible: nothing dropped
		{2_000_000, 8, 250_000, 2_000_000},
		// remainder of 1 is dropped, never redistributed
		{1_000_001, 8, 125_000, 1_000_000},
		{10, 3, 3, 9},
		{7, 8, 0, 0},
	}

	for _, tt := range tests {
		cfg := validConfig()
		cfg.Iterations = tt.iterations
		cfg.Threads = tt.threads

		if got := cfg.PerWorker(); got != tt.perWorker {
			t.Errorf("PerWorker(%d/%d) = %d, want %d", tt.iterations, tt.threads, got, tt.perWorker)
		}
		if got := cfg.EffectiveIterations(); got != tt.effective {
			t.Errorf("EffectiveIterations(%d/%d) = %d, want %d", tt.iterations, tt.threads, got, tt.effective)
		}
	}
}
