package api

import (
	"errors"
	"math"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

const maxNameLength = 32

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p PlayerUpdatePayload) Validate() error {
	if !finite(p.Position.X, p.Position.Y, p.Angle) {
		return errors.New("position and angle must be finite numbers")
	}
	return nil
}

func (p ShootPayload) Validate() error {
	if !finite(p.Angle) {
		return errors.New("angle must be a finite number")
	}
	return nil
}

func (p CreatePartyPayload) Validate() error {
	if len(p.Name) > maxNameLength {
		return errors.New("player name too long")
	}
	return nil
}

func (p JoinPartyPayload) Validate() error {
	if p.PartyID == "" {
		return errors.New("partyId is required")
	}
	if len(p.PlayerName) > maxNameLength {
		return errors.New("player name too long")
	}
	return nil
}

func (p UpgradePayload) Validate() error {
	if p.Type == "" {
		return errors.New("upgrade type is required")
	}
	return nil
}

func (ids MemberIDs) Validate() error {
	if len(ids) > 64 {
		return errors.New("too many ids")
	}
	return nil
}
