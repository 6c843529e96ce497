package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grapple/swing"
	"github.com/milk9111/grapple/world"
	"gopkg.in/yaml.v3"
)

const (
	SwingFile = "swing.yaml"
	LevelFile = "level.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

type TuningSpec struct {
	AirControl                 float64 `yaml:"air_control"`
	FallingLateralFriction     float64 `yaml:"falling_lateral_friction"`
	BrakingDecelerationFalling float64 `yaml:"braking_deceleration_falling"`
	GravityScale               float64 `yaml:"gravity_scale"`
}

func (t TuningSpec) Tuning() swing.MovementTuning {
	return swing.MovementTuning{
		AirControl:                 t.AirControl,
		FallingLateralFriction:     t.FallingLateralFriction,
		BrakingDecelerationFalling: t.BrakingDecelerationFalling,
		GravityScale:               t.GravityScale,
	}
}

type CharacterSpec struct {
	Width         float64     `yaml:"width"`
	Height        float64     `yaml:"height"`
	MaxWalkSpeed  float64     `yaml:"max_walk_speed"`
	GroundAccel   float64     `yaml:"ground_accel"`
	JumpZVelocity float64     `yaml:"jump_z_velocity"`
	Tuning        *TuningSpec `yaml:"tuning"`
}

// SwingSpec is the on-disk form of swing.Config plus the character it drives.
// FOV values are degrees.
type SwingSpec struct {
	Name              string        `yaml:"name"`
	MaxSwingSpeed     float64       `yaml:"max_swing_speed"`
	BaseFOV           float64       `yaml:"base_fov"`
	MaxFOV            float64       `yaml:"max_fov"`
	FOVInterpSpeed    float64       `yaml:"fov_interp_speed"`
	BoostRate         float64       `yaml:"boost_rate"`
	Gravity           *Vec3Spec     `yaml:"gravity"`
	RopeGrowthEpsilon float64       `yaml:"rope_growth_epsilon"`
	RopeTravelSpeed   float64       `yaml:"rope_travel_speed"`
	MaxFireDistance   float64       `yaml:"max_fire_distance"`
	AnchorEpsilon     float64       `yaml:"anchor_epsilon"`
	MaxDeltaTime      float64       `yaml:"max_delta_time"`
	SwingTuning       TuningSpec    `yaml:"swing_tuning"`
	Character         CharacterSpec `yaml:"character"`
}

func LoadSwingSpec() (*SwingSpec, error) {
	spec, err := LoadSpec[SwingSpec](SwingFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config converts the spec, filling zero fields from swing.DefaultConfig.
// The swing tuning is taken as written since zero is its normal value.
func (s SwingSpec) Config() (swing.Config, error) {
	cfg := swing.DefaultConfig()
	setIf(&cfg.MaxSwingSpeed, s.MaxSwingSpeed)
	setIf(&cfg.BaseFOV, s.BaseFOV)
	setIf(&cfg.MaxFOV, s.MaxFOV)
	setIf(&cfg.FOVInterpSpeed, s.FOVInterpSpeed)
	setIf(&cfg.BoostRate, s.BoostRate)
	setIf(&cfg.RopeGrowthEpsilon, s.RopeGrowthEpsilon)
	setIf(&cfg.RopeTravelSpeed, s.RopeTravelSpeed)
	setIf(&cfg.MaxFireDistance, s.MaxFireDistance)
	setIf(&cfg.AnchorEpsilon, s.AnchorEpsilon)
	setIf(&cfg.MaxDeltaTime, s.MaxDeltaTime)
	if s.Gravity != nil {
		cfg.Gravity = s.Gravity.Vec3()
	}
	cfg.SwingTuning = s.SwingTuning.Tuning()

	if err := cfg.Validate(); err != nil {
		return swing.Config{}, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return cfg, nil
}

func (s SwingSpec) CharacterConfig() world.CharacterConfig {
	cfg := world.DefaultCharacterConfig()
	c := s.Character
	setIf(&cfg.Width, c.Width)
	setIf(&cfg.Height, c.Height)
	setIf(&cfg.MaxWalkSpeed, c.MaxWalkSpeed)
	setIf(&cfg.GroundAccel, c.GroundAccel)
	setIf(&cfg.JumpZVelocity, c.JumpZVelocity)
	if c.Tuning != nil {
		cfg.Tuning = c.Tuning.Tuning()
	}
	return cfg
}

// NewSwingSpec is the inverse of Config and CharacterConfig, used to dump a
// live tuning back out as swing.yaml.
func NewSwingSpec(name string, cfg swing.Config, char world.CharacterConfig) SwingSpec {
	g := Vec3Spec{X: cfg.Gravity.X(), Y: cfg.Gravity.Y(), Z: cfg.Gravity.Z()}
	charTuning := tuningSpec(char.Tuning)
	return SwingSpec{
		Name:              name,
		MaxSwingSpeed:     cfg.MaxSwingSpeed,
		BaseFOV:           cfg.BaseFOV,
		MaxFOV:            cfg.MaxFOV,
		FOVInterpSpeed:    cfg.FOVInterpSpeed,
		BoostRate:         cfg.BoostRate,
		Gravity:           &g,
		RopeGrowthEpsilon: cfg.RopeGrowthEpsilon,
		RopeTravelSpeed:   cfg.RopeTravelSpeed,
		MaxFireDistance:   cfg.MaxFireDistance,
		AnchorEpsilon:     cfg.AnchorEpsilon,
		MaxDeltaTime:      cfg.MaxDeltaTime,
		SwingTuning:       tuningSpec(cfg.SwingTuning),
		Character: CharacterSpec{
			Width:         char.Width,
			Height:        char.Height,
			MaxWalkSpeed:  char.MaxWalkSpeed,
			GroundAccel:   char.GroundAccel,
			JumpZVelocity: char.JumpZVelocity,
			Tuning:        &charTuning,
		},
	}
}

func tuningSpec(t swing.MovementTuning) TuningSpec {
	return TuningSpec{
		AirControl:                 t.AirControl,
		FallingLateralFriction:     t.FallingLateralFriction,
		BrakingDecelerationFalling: t.BrakingDecelerationFalling,
		GravityScale:               t.GravityScale,
	}
}

// Marshal renders the spec as YAML.
func (s SwingSpec) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal %s: %w", s.Name, err)
	}
	return data, nil
}

func setIf(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

type BlockSpec struct {
	Name  string     `yaml:"name"`
	MinX  float64    `yaml:"min_x"`
	MinZ  float64    `yaml:"min_z"`
	MaxX  float64    `yaml:"max_x"`
	MaxZ  float64    `yaml:"max_z"`
	Color *YAMLColor `yaml:"color"`
}

type MoverSpec struct {
	Name        string     `yaml:"name"`
	X           float64    `yaml:"x"`
	Z           float64    `yaml:"z"`
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	DirX        float64    `yaml:"dir_x"`
	DirZ        float64    `yaml:"dir_z"`
	TravelSpeed float64    `yaml:"travel_speed"`
	Range       float64    `yaml:"range"`
	Color       *YAMLColor `yaml:"color"`
}

type PropSpec struct {
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	DirX   float64 `yaml:"dir_x"`
	DirZ   float64 `yaml:"dir_z"`
	Length float64 `yaml:"length"`
	Speed  float64 `yaml:"speed"`
}

type SpawnSpec struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

type LevelSpec struct {
	Name       string      `yaml:"name"`
	Width      float64     `yaml:"width"`
	Height     float64     `yaml:"height"`
	Spawn      SpawnSpec   `yaml:"spawn"`
	Background *YAMLColor  `yaml:"background"`
	Blocks     []BlockSpec `yaml:"blocks"`
	Movers     []MoverSpec `yaml:"movers"`
	Props      []PropSpec  `yaml:"props"`
}

func LoadLevelSpec() (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](LevelFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (l LevelSpec) Level() world.Level {
	lvl := world.Level{Width: l.Width, Height: l.Height}
	for _, b := range l.Blocks {
		lvl.Blocks = append(lvl.Blocks, world.Block{
			Name: b.Name,
			MinX: b.MinX,
			MinZ: b.MinZ,
			MaxX: b.MaxX,
			MaxZ: b.MaxZ,
		})
	}
	for _, m := range l.Movers {
		lvl.Movers = append(lvl.Movers, world.MoverConfig{
			Name:        m.Name,
			Center:      mgl64.Vec3{m.X, 0, m.Z},
			Width:       m.Width,
			Height:      m.Height,
			Direction:   mgl64.Vec3{m.DirX, 0, m.DirZ},
			TravelSpeed: m.TravelSpeed,
			Range:       m.Range,
		})
	}
	return lvl
}

func (l LevelSpec) SpawnPoint() mgl64.Vec3 {
	return mgl64.Vec3{l.Spawn.X, 0, l.Spawn.Z}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns the parsed color or fallback when unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
