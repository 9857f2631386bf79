package service

import "errors"

// Validation failures are returned as these sentinels so handlers can render
// a specific reason without inspecting collaborator internals. Raw pgx or
// redis errors never cross the handler boundary.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrLastMachineProtected = errors.New("cannot sell your last machine")
	ErrClaimConflict        = errors.New("salary already claimed this week")
	ErrUnknownMachineType   = errors.New("unknown machine type")
	ErrMachineNotFound      = errors.New("machine not found")
)
