package obj

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestScriptInputWalkJump(t *testing.T) {
	const step = 0.02
	in, err := LoadScriptInput("walk_jump", step, quietLogger())
	if err != nil {
		t.Fatalf("LoadScriptInput: %v", err)
	}

	type sample struct {
		x         float64
		run, jump bool
	}
	got := map[int]sample{}
	for tick := 0; tick < 250; tick++ {
		in.Poll()
		x, _ := in.MovementAxes()
		got[tick] = sample{x, in.RunRequested(), in.JumpRequested()}
	}

	tests := []struct {
		tick int
		want sample
	}{
		{0, sample{0, false, false}},
		{50, sample{1, false, false}},
		{90, sample{1, true, false}},
		{102, sample{1, true, true}},
		{160, sample{-1, false, false}},
		{220, sample{0, false, false}},
	}
	for _, tt := range tests {
		if got[tt.tick] != tt.want {
			t.Errorf("tick %d = %+v, want %+v", tt.tick, got[tt.tick], tt.want)
		}
	}
	if in.Tick() != 250 || in.Errors() != 0 {
		t.Fatalf("Tick=%d Errors=%d", in.Tick(), in.Errors())
	}
}

func TestScriptInputKeepsLastSampleOnError(t *testing.T) {
	src := []byte(`
move_x := 1.0
move_z := 0.5
run := true
jump := false
if tick == 1 {
	x := [1, 2]
	jump = x[5] + 1
}
`)
	in, err := NewScriptInput("inline", src, 0.1, quietLogger())
	if err != nil {
		t.Fatalf("NewScriptInput: %v", err)
	}
	in.Poll()
	in.Poll()
	x, z := in.MovementAxes()
	if x != 1 || z != 0.5 || !in.RunRequested() || in.JumpRequested() {
		t.Fatalf("sample changed after a failed run: %v %v %v %v", x, z, in.RunRequested(), in.JumpRequested())
	}
	if in.Errors() != 1 {
		t.Fatalf("Errors = %d, want 1", in.Errors())
	}
}

func TestScriptInputUndefinedOutputs(t *testing.T) {
	in, err := NewScriptInput("empty", []byte(`a := tick`), 0.1, nil)
	if err != nil {
		t.Fatalf("NewScriptInput: %v", err)
	}
	in.Poll()
	x, z := in.MovementAxes()
	if x != 0 || z != 0 || in.RunRequested() || in.JumpRequested() {
		t.Fatal("undefined outputs should read as zero")
	}
}

func TestNewScriptInputErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		step float64
	}{
		{"syntax", `move_x := (`, 0.1},
		{"zero step", `move_x := 1.0`, 0},
		{"negative step", `move_x := 1.0`, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewScriptInput(tt.name, []byte(tt.src), tt.step, nil); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
	if _, err := LoadScriptInput("missing", 0.1, nil); err == nil {
		t.Fatal("expected an error for a missing script")
	}
}
