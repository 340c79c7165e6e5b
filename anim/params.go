// Package anim stores animator parameters keyed by hashed names.
package anim

import (
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/zeebo/xxh3"
)

// ParamID is the stable hash of a parameter name.
type ParamID uint64

func StringToHash(name string) ParamID {
	return ParamID(xxh3.HashString(name))
}

type param struct {
	name  string
	value bool
}

// Params is an ordered set of boolean parameters. It satisfies
// locomotion.Animator. A nil *Params ignores writes and reads false.
type Params struct {
	values  *orderedmap.OrderedMap[ParamID, *param]
	changes uint64
}

// NewParams registers names in order, all false.
func NewParams(names ...string) *Params {
	p := &Params{values: orderedmap.NewOrderedMap[ParamID, *param]()}
	for _, name := range names {
		p.register(name)
	}
	return p
}

func (p *Params) register(name string) *param {
	id := StringToHash(name)
	if existing, ok := p.values.Get(id); ok {
		return existing
	}
	pr := &param{name: name}
	p.values.Set(id, pr)
	return pr
}

// SetBool sets name, registering it on first use.
func (p *Params) SetBool(name string, v bool) {
	if p == nil {
		return
	}
	p.set(p.register(name), v)
}

// SetBoolID sets an already registered parameter and reports whether it
// exists.
func (p *Params) SetBoolID(id ParamID, v bool) bool {
	if p == nil {
		return false
	}
	pr, ok := p.values.Get(id)
	if !ok {
		return false
	}
	p.set(pr, v)
	return true
}

func (p *Params) set(pr *param, v bool) {
	if pr.value != v {
		pr.value = v
		p.changes++
	}
}

func (p *Params) Bool(name string) bool {
	v, _ := p.BoolID(StringToHash(name))
	return v
}

func (p *Params) BoolID(id ParamID) (value, ok bool) {
	if p == nil {
		return false, false
	}
	pr, ok := p.values.Get(id)
	if !ok {
		return false, false
	}
	return pr.value, true
}

// Changes counts value flips since construction or the last Reset.
func (p *Params) Changes() uint64 {
	if p == nil {
		return 0
	}
	return p.changes
}

func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return p.values.Len()
}

// Each visits parameters in registration order.
func (p *Params) Each(fn func(name string, value bool)) {
	if p == nil {
		return
	}
	for el := p.values.Front(); el != nil; el = el.Next() {
		fn(el.Value.name, el.Value.value)
	}
}

// Reset clears every value to false and zeroes the change counter.
func (p *Params) Reset() {
	if p == nil {
		return
	}
	for el := p.values.Front(); el != nil; el = el.Next() {
		el.Value.value = false
	}
	p.changes = 0
}

func (p *Params) String() string {
	var b strings.Builder
	p.Each(func(name string, value bool) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatBool(value))
	})
	return b.String()
}
