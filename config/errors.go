package config

import "errors"

var (
	ErrInvalidTuning = errors.New("config: invalid tuning")
	ErrInvalidLevel  = errors.New("config: invalid level")
)
