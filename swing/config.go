package swing

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidConfig = errors.New("swing: invalid config")

// MovementTuning is the set of movement parameters the controller overrides
// on the movement collaborator while swinging.
type MovementTuning struct {
	AirControl                 float64
	FallingLateralFriction     float64
	BrakingDecelerationFalling float64
	// GravityScale multiplies the host's own gravity. The swing integrator
	// applies gravity itself, so swinging tuning sets this to 0.
	GravityScale float64
}

// Config holds every tunable of the swing core. It is copied at construction
// and never mutated afterwards.
type Config struct {
	MaxSwingSpeed  float64
	BaseFOV        float64 // degrees
	MaxFOV         float64 // degrees
	FOVInterpSpeed float64
	BoostRate      float64 // units/s^2 along the character's forward vector
	Gravity        mgl64.Vec3

	RopeGrowthEpsilon float64
	RopeTravelSpeed   float64

	MaxFireDistance float64
	// AnchorEpsilon is the anchor distance below which projection is skipped.
	AnchorEpsilon float64
	// MaxDeltaTime clamps a single frame step.
	MaxDeltaTime float64

	SwingTuning MovementTuning
}

func DefaultConfig() Config {
	return Config{
		MaxSwingSpeed:     1500,
		BaseFOV:           90,
		MaxFOV:            110,
		FOVInterpSpeed:    5,
		BoostRate:         1200,
		Gravity:           mgl64.Vec3{0, 0, -980},
		RopeGrowthEpsilon: 10,
		RopeTravelSpeed:   300,
		MaxFireDistance:   10000,
		AnchorEpsilon:     1,
		MaxDeltaTime:      0.1,
		SwingTuning:       MovementTuning{},
	}
}

// Validate reports the first invalid field, wrapped with ErrInvalidConfig.
func (c Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"max_swing_speed", c.MaxSwingSpeed > 0},
		{"base_fov", c.BaseFOV > 0 && c.BaseFOV < 180},
		{"max_fov", c.MaxFOV >= c.BaseFOV && c.MaxFOV < 180},
		{"fov_interp_speed", c.FOVInterpSpeed >= 0},
		{"boost_rate", c.BoostRate >= 0},
		{"rope_growth_epsilon", c.RopeGrowthEpsilon > 0},
		{"rope_travel_speed", c.RopeTravelSpeed >= 0},
		{"max_fire_distance", c.MaxFireDistance > 0},
		{"anchor_epsilon", c.AnchorEpsilon > 0},
		{"max_delta_time", c.MaxDeltaTime > 0},
		{"gravity", finite(c.Gravity[0]) && finite(c.Gravity[1]) && finite(c.Gravity[2])},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.name)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
