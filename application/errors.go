package application

import "errors"

var (
	ErrNotConnected        = errors.New("wallet not connected")
	ErrNoHero              = errors.New("no hero")
	ErrInvalidState        = errors.New("action not allowed in the current state")
	ErrActionPending       = errors.New("another action is still pending")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrHeroDefeated        = errors.New("hero is defeated")
	ErrFullHealth          = errors.New("hero is already at full health")
	ErrMissingEvent        = errors.New("confirmed transaction carries no readable result")
)
