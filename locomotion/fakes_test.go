package locomotion

import "github.com/go-gl/mathgl/mgl64"

type fakeInput struct {
	x, z      float64
	run, jump bool
	polls     int
}

func (f *fakeInput) Poll()                        { f.polls++ }
func (f *fakeInput) MovementAxes() (x, z float64) { return f.x, f.z }
func (f *fakeInput) RunRequested() bool           { return f.run }
func (f *fakeInput) JumpRequested() bool          { return f.jump }

// fakeBody either reports a fixed grounded flag or, with floor set, rests on
// a plane at y=0.
type fakeBody struct {
	pos      mgl64.Vec3
	facing   mgl64.Quat
	floor    bool
	grounded bool
	moves    []mgl64.Vec3
}

func newFakeBody() *fakeBody {
	return &fakeBody{facing: mgl64.QuatIdent(), grounded: true}
}

func newFloorBody() *fakeBody {
	return &fakeBody{facing: mgl64.QuatIdent(), floor: true}
}

func (b *fakeBody) Grounded() bool {
	if b.floor {
		return b.pos[1] <= 0
	}
	return b.grounded
}

func (b *fakeBody) ApplyDisplacement(d mgl64.Vec3) {
	b.moves = append(b.moves, d)
	b.pos = b.pos.Add(d)
	if b.floor && b.pos[1] < 0 {
		b.pos[1] = 0
	}
}

func (b *fakeBody) Facing() mgl64.Quat     { return b.facing }
func (b *fakeBody) SetFacing(q mgl64.Quat) { b.facing = q }

type recordingAnimator struct {
	values map[string]bool
	calls  int
}

func newRecordingAnimator() *recordingAnimator {
	return &recordingAnimator{values: make(map[string]bool)}
}

func (a *recordingAnimator) SetBool(name string, v bool) {
	a.values[name] = v
	a.calls++
}
