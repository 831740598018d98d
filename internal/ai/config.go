package ai

import "time"

// BatchConfig holds the sizing constants of adaptive batch mode.
type BatchConfig struct {
	// Threshold is the leaf count above which batch mode is used.
	Threshold int `mapstructure:"threshold"`
	// InitialMax caps the first batch.
	InitialMax int `mapstructure:"initial_max"`
	// InitialDivisor sizes the first batch as total/InitialDivisor.
	InitialDivisor int `mapstructure:"initial_divisor"`
	// Growth is added after GrowAfter consecutive successes.
	Growth    int `mapstructure:"growth"`
	GrowAfter int `mapstructure:"grow_after"`
	// Max and Min bound the batch size.
	Max int `mapstructure:"max"`
	Min int `mapstructure:"min"`
	// ShrinkFactor scales the size after a failure.
	ShrinkFactor float64 `mapstructure:"shrink_factor"`
	// Delay is slept between requests.
	Delay time.Duration `mapstructure:"delay"`
	// Timeout bounds a single request.
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxFailures bounds failed requests per run; 0 disables the bound.
	MaxFailures int `mapstructure:"max_failures"`
	// MaxDuration bounds a whole run; 0 disables the bound.
	MaxDuration time.Duration `mapstructure:"max_duration"`
}

// DefaultBatchConfig returns the standard batching constants.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Threshold:      100,
		InitialMax:     60,
		InitialDivisor: 4,
		Growth:         10,
		GrowAfter:      2,
		Max:            80,
		Min:            20,
		ShrinkFactor:   0.7,
		Delay:          time.Second,
		Timeout:        time.Minute,
		MaxFailures:    30,
		MaxDuration:    15 * time.Minute,
	}
}

// initialSize is min(InitialMax, total/InitialDivisor), at least 1.
func (c BatchConfig) initialSize(total int) int {
	div := max(1, c.InitialDivisor)
	return max(1, min(c.InitialMax, total/div))
}

// shrink returns the size after a failure. It never goes below the floor
// or below 1.
func (c BatchConfig) shrink(size int) int {
	return max(c.floor(), int(float64(size)*c.ShrinkFactor))
}

func (c BatchConfig) grow(size int) int {
	return min(max(c.Max, size), size+c.Growth)
}

func (c BatchConfig) floor() int {
	return max(1, c.Min)
}
