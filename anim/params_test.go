package anim

import "testing"

func TestStringToHashStable(t *testing.T) {
	names := []string{"IsWalking", "IsRunning", "IsJumping", "IsFalling"}
	seen := make(map[ParamID]string, len(names))
	for _, n := range names {
		id := StringToHash(n)
		if id != StringToHash(n) {
			t.Fatalf("hash of %q not stable", n)
		}
		if prev, ok := seen[id]; ok {
			t.Fatalf("%q collides with %q", n, prev)
		}
		seen[id] = n
	}
}

type write struct {
	k string
	v bool
}

func TestParams(t *testing.T) {
	cases := []struct {
		name        string
		writes      []write
		wantChanges uint64
		wantString  string
	}{
		{"untouched", nil, 0, "IsWalking=false IsRunning=false"},
		{"set_once", []write{{"IsWalking", true}}, 1, "IsWalking=true IsRunning=false"},
		{"same_value_no_change", []write{{"IsRunning", false}, {"IsRunning", false}}, 0, "IsWalking=false IsRunning=false"},
		{"flip_back", []write{{"IsRunning", true}, {"IsRunning", false}}, 2, "IsWalking=false IsRunning=false"},
		{"registers_unknown", []write{{"IsFalling", true}}, 1, "IsWalking=false IsRunning=false IsFalling=true"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewParams("IsWalking", "IsRunning")
			for _, w := range c.writes {
				p.SetBool(w.k, w.v)
			}
			if p.Changes() != c.wantChanges {
				t.Fatalf("expected %d changes, got %d", c.wantChanges, p.Changes())
			}
			if got := p.String(); got != c.wantString {
				t.Fatalf("expected %q, got %q", c.wantString, got)
			}
		})
	}
}

func TestParamsByID(t *testing.T) {
	p := NewParams("IsJumping")
	id := StringToHash("IsJumping")
	if !p.SetBoolID(id, true) {
		t.Fatalf("SetBoolID should find a registered parameter")
	}
	if v, ok := p.BoolID(id); !ok || !v {
		t.Fatalf("expected IsJumping=true, got %v (ok=%v)", v, ok)
	}
	if p.SetBoolID(StringToHash("Missing"), true) {
		t.Fatalf("SetBoolID must not register parameters")
	}
	if p.Len() != 1 {
		t.Fatalf("expected 1 parameter, got %d", p.Len())
	}

	p.Reset()
	if p.Bool("IsJumping") || p.Changes() != 0 {
		t.Fatalf("reset should clear values and changes")
	}
}

func TestNilParams(t *testing.T) {
	var p *Params
	p.SetBool("IsWalking", true)
	p.Reset()
	if p.Bool("IsWalking") || p.Len() != 0 || p.Changes() != 0 || p.String() != "" {
		t.Fatalf("nil params should read as empty")
	}
}
