package discord

import "errors"

var (
	ErrUnauthorized = errors.New("discord: invalid bot token")
	ErrForbidden    = errors.New("discord: missing permissions")
	ErrNotFound     = errors.New("discord: not found")
	ErrRateLimited  = errors.New("discord: rate limited")
)
