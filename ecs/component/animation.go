package component

import "github.com/milk9111/locomotion/anim"

// Animation holds the animator parameters a controller writes into.
type Animation struct {
	Params *anim.Params
}

var AnimationComponent = NewComponent[Animation]()
