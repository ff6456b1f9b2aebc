package model

import (
	"fmt"
	"strings"
)

// Authority identifies the power authority whose reference dataset applies to
// a station.
type Authority string

const (
	// AuthorityMEA is the Metropolitan Electricity Authority.
	AuthorityMEA Authority = "MEA"
	// AuthorityPEA is the Provincial Electricity Authority.
	AuthorityPEA Authority = "PEA"
)

// Authorities lists every supported authority in display order.
var Authorities = []Authority{AuthorityPEA, AuthorityMEA}

// ParseAuthority converts s into an Authority. Matching is case-insensitive.
func ParseAuthority(s string) (Authority, error) {
	switch Authority(strings.ToUpper(strings.TrimSpace(s))) {
	case AuthorityMEA:
		return AuthorityMEA, nil
	case AuthorityPEA:
		return AuthorityPEA, nil
	default:
		return "", fmt.Errorf("unknown authority %q", s)
	}
}

// Valid reports whether a is one of the known authorities.
func (a Authority) Valid() bool {
	return a == AuthorityMEA || a == AuthorityPEA
}

func (a Authority) String() string { return string(a) }

// Mode selects whether every charger of a station shares one class.
type Mode string

const (
	// ModeUniform means all chargers are the same class.
	ModeUniform Mode = "uniform"
	// ModeMixed means each charger position is selected individually.
	ModeMixed Mode = "mixed"
)

// ParseMode accepts "uniform"/"mixed" as well as the form values "same"/"any".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform", "same", "":
		return ModeUniform, nil
	case "mixed", "any":
		return ModeMixed, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeUniform || m == ModeMixed }
