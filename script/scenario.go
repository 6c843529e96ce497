package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/grapple/prefabs"
)

// Driver is what a scenario script can poke at. The simulator and the tests
// each provide one.
type Driver interface {
	Fire() bool
	Release()
	SetBoost(active bool)
	Move(x float64)
	Jump()
	Aim(x, z float64)
	State() string
	Speed() float64
	FOV() float64
	Position() (x, z float64)
}

// A scenario script defines update(engine, state, frame). state is a map that
// survives between frames.
const dispatchScript = `
if __phase == "update" {
	update(__engine, __state, __frame)
}
`

type Scenario struct {
	name      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	done      bool
	log       []string
}

// Load compiles prefabs/scripts/<name>.tengo.
func Load(name string) (*Scenario, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func Compile(name string, src []byte) (*Scenario, error) {
	full := string(src) + "\n" + dispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__frame", 0)

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	sc := &Scenario{
		name:      name,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	// run top-level statements once so globals are initialised
	if err := sc.run("noop", 0, &tengo.ImmutableMap{Value: map[string]tengo.Object{}}); err != nil {
		return nil, fmt.Errorf("script: init %s: %w", name, err)
	}
	return sc, nil
}

func (s *Scenario) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Done reports whether the script called engine.finish().
func (s *Scenario) Done() bool {
	return s != nil && s.done
}

// Logs returns and clears the lines the script printed through engine.log.
func (s *Scenario) Logs() []string {
	if s == nil {
		return nil
	}
	out := s.log
	s.log = nil
	return out
}

// Step runs update for one frame against d.
func (s *Scenario) Step(frame int, d Driver) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("script: nil scenario")
	}
	if s.done || d == nil {
		return nil
	}
	if err := s.run("update", frame, s.engine(d)); err != nil {
		return fmt.Errorf("script: %s frame %d: %w", s.name, frame, err)
	}
	return nil
}

func (s *Scenario) run(phase string, frame int, engine *tengo.ImmutableMap) error {
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.stateData); err != nil {
		return err
	}
	if err := s.compiled.Set("__frame", frame); err != nil {
		return err
	}
	return s.compiled.Run()
}

func (s *Scenario) engine(d Driver) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(d.Fire()), nil
	}}

	values["release"] = &tengo.UserFunction{Name: "release", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.Release()
		return tengo.TrueValue, nil
	}}

	values["boost"] = &tengo.UserFunction{Name: "boost", Value: func(args ...tengo.Object) (tengo.Object, error) {
		active := true
		if len(args) > 0 {
			active = !args[0].IsFalsy()
		}
		d.SetBoost(active)
		return tengo.TrueValue, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		d.Move(x)
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.Jump()
		return tengo.TrueValue, nil
	}}

	values["aim"] = &tengo.UserFunction{Name: "aim", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, okX := tengo.ToFloat64(args[0])
		z, okZ := tengo.ToFloat64(args[1])
		if !okX || !okZ {
			return nil, tengo.ErrInvalidArgumentType{Name: "direction", Expected: "float", Found: args[0].TypeName()}
		}
		d.Aim(x, z)
		return tengo.TrueValue, nil
	}}

	values["state"] = &tengo.UserFunction{Name: "state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: d.State()}, nil
	}}

	values["speed"] = &tengo.UserFunction{Name: "speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: d.Speed()}, nil
	}}

	values["fov"] = &tengo.UserFunction{Name: "fov", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: d.FOV()}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, z := d.Position()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: z}}}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.log = append(s.log, strings.Join(parts, " "))
		return tengo.TrueValue, nil
	}}

	values["finish"] = &tengo.UserFunction{Name: "finish", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.done = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
