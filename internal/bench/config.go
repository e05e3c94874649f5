package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/cnflab/satbench/internal/solver"
)

// Config carries the benchmark policy: the per-run time budget, the solver
// thresholds, the memory sampling cadence and the degree of parallelism
// across (file, algorithm) pairs.
type Config struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	BruteForceLimit int           `mapstructure:"bruteForceLimit"`
	DPStepLimit     int           `mapstructure:"dpStepLimit"`
	SampleInterval  time.Duration `mapstructure:"sampleInterval"`
	Jobs            int           `mapstructure:"jobs"`
	Algorithms      []string      `mapstructure:"algorithms"`
}

func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		BruteForceLimit: 20,
		DPStepLimit:     100000,
		SampleInterval:  50 * time.Millisecond,
		Jobs:            1,
		Algorithms:      solver.Algorithms(),
	}
}

// LoadConfig reads a JSON config file over the defaults. Duration fields
// accept Go duration strings ("30s", "50ms").
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file (%s): %w", path, err)
	}
	raw := map[string]interface{}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parsing config file (%s): %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &cfg,
		// JSON numbers arrive as float64.
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decoding config file (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file (%s): %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.SampleInterval <= 0 {
		return fmt.Errorf("sample interval must be positive, got %s", c.SampleInterval)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if len(c.Algorithms) == 0 {
		return fmt.Errorf("at least one algorithm is required")
	}
	for _, id := range c.Algorithms {
		if _, err := solver.New(id, c.SolverOptions()); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) SolverOptions() solver.Options {
	return solver.Options{
		BruteForceLimit: c.BruteForceLimit,
		DPStepLimit:     c.DPStepLimit,
	}
}
