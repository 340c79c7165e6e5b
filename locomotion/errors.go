package locomotion

import "errors"

var (
	ErrNonPositiveJumpHeight   = errors.New("max jump height must be positive")
	ErrNonPositiveJumpTime     = errors.New("max jump time must be positive")
	ErrInvalidSpeed            = errors.New("walk and run speed must be finite and non-negative")
	ErrInvalidFallMultiplier   = errors.New("fall multiplier must be positive")
	ErrInvalidTerminalSpeed    = errors.New("terminal fall speed must be positive")
	ErrPositiveGroundedGravity = errors.New("grounded gravity must not be positive")
	ErrInvalidRotationFactor   = errors.New("rotation factor must be finite and non-negative")
	ErrInvalidJumpScale        = errors.New("jump velocity scale must be positive")
	ErrInvalidTimestep         = errors.New("fixed timestep must be positive")
	ErrNilBody                 = errors.New("body is nil")
	ErrNilInput                = errors.New("input source is nil")
)
