package catbot

import "errors"

var (
	// ErrInvalidConfig is returned when an environment is configured
	// with physically meaningless values, for example an empty channel
	// range or fewer than two bins
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownChannel is returned when an observation channel has no
	// defined computation
	ErrUnknownChannel = errors.New("unknown observation channel")

	// ErrInvalidAction is returned when an action id is outside
	// [0, NumActions)
	ErrInvalidAction = errors.New("invalid action")

	// ErrJointCount is returned when joint readings or joint targets
	// do not have exactly NumJoints entries
	ErrJointCount = errors.New("wrong number of joints")

	// ErrSensorsNotReady is returned when waiting for the first
	// reading of every sensor feed is abandoned
	ErrSensorsNotReady = errors.New("sensors not ready")
)
