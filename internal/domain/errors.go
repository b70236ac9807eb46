package domain

import "errors"

// Ошибки лобби. Тексты уходят клиенту как есть (partyError / gameError).
var (
	ErrPartyNotFound    = errors.New("Party does not exist")
	ErrPartyFull        = errors.New("Party is full")
	ErrPartyStarted     = errors.New("Party already started a game")
	ErrNotInParty       = errors.New("You are not in a party")
	ErrNotLeader        = errors.New("Only party leader can start the game")
	ErrPartyInGame      = errors.New("Party already in a game")
	ErrAlreadyInGame    = errors.New("Leave the current game first")
	ErrNotInSession     = errors.New("player is not in an active game")
	ErrPlayerDead       = errors.New("dead players cannot shoot")
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownUpgrade   = errors.New("unknown upgrade")
	ErrUpgradeForbidden = errors.New("upgrade not available")
	ErrNotEnoughXP      = errors.New("not enough experience")
)
