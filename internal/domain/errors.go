package domain

import "errors"

var (
	ErrUnknownStage    = errors.New("unknown stage")
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)
