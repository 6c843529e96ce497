package swing

import (
	"math"
	"testing"
)

func TestFOVTarget(t *testing.T) {
	f := NewFOVController(90, 110, 1500, 5)
	cases := []struct {
		name     string
		speed    float64
		swinging bool
		want     float64
	}{
		{"idle_fast", 1500, false, 90},
		{"swinging_still", 0, true, 90},
		{"swinging_half", 750, true, 100},
		{"swinging_max", 1500, true, 110},
		{"swinging_over", 9000, true, 110},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := f.Target(c.speed, c.swinging); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("Target = %v, want %v", got, c.want)
			}
		})
	}
}

func TestFOVConvergesMonotonically(t *testing.T) {
	f := NewFOVController(90, 110, 1500, 5)
	const dt = 1.0 / 60

	prev := f.Current()
	for i := 0; i < 600; i++ {
		cur := f.Advance(dt, 1500, true)
		if cur < prev || cur > 110 {
			t.Fatalf("tick %d: fov %v after %v, want monotonic and <= 110", i, cur, prev)
		}
		prev = cur
	}
	if math.Abs(prev-110) > 1e-3 {
		t.Fatalf("fov %v did not reach 110", prev)
	}

	for i := 0; i < 600; i++ {
		cur := f.Advance(dt, 1500, false)
		if cur > prev || cur < 90 {
			t.Fatalf("tick %d: fov %v after %v, want monotonic and >= 90", i, cur, prev)
		}
		prev = cur
	}
	if math.Abs(prev-90) > 1e-3 {
		t.Fatalf("fov %v did not return to 90", prev)
	}
}
