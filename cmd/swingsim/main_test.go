package main

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestRunScenarios(t *testing.T) {
	cases := []struct {
		name string
		opts options
		want []string
	}{
		{"pendulum", options{scenario: "pendulum", dt: 1.0 / 60, every: 60}, []string{"idle -> swinging", "swinging -> idle", "script: attached"}},
		{"fixed_frames", options{scenario: "boost", frames: 90, dt: 1.0 / 60}, []string{"done after 90 frames"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := run(c.opts, log.New(&buf, "", 0)); err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, w := range c.want {
				if !strings.Contains(buf.String(), w) {
					t.Fatalf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	if err := run(options{scenario: "pendulum", dt: 0}, log.New(&buf, "", 0)); err == nil {
		t.Fatalf("expected error for zero dt")
	}
	if err := run(options{scenario: "does_not_exist", dt: 1.0 / 60}, log.New(&buf, "", 0)); err == nil {
		t.Fatalf("expected error for missing scenario")
	}
}
