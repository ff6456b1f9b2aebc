package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest marks a structurally invalid StationRequest. It signals a
// request-construction bug, not missing reference data.
var ErrInvalidRequest = errors.New("invalid station request")

// MaxChargers is the largest number of charger positions a station may hold.
const MaxChargers = 12

// ChargerClass is a charger power tier label such as "80 kW" or
// "640 kW Prime+". The empty class denotes an unselected position.
type ChargerClass string

// Empty reports whether the class denotes an unselected position.
func (c ChargerClass) Empty() bool { return strings.TrimSpace(string(c)) == "" }

// StationRequest captures the user selections for one station.
//
// In uniform mode Chargers holds a single class replicated Count times. In
// mixed mode Chargers holds one class per position and Count is ignored.
type StationRequest struct {
	Authority Authority       `json:"authority" yaml:"authority"`
	Mode      Mode            `json:"mode" yaml:"mode"`
	Chargers  []ChargerClass  `json:"chargers" yaml:"chargers"`
	Count     int             `json:"count,omitempty" yaml:"count,omitempty"`
	TRWiring  TRWiringMethod  `json:"trWiringMethod" yaml:"tr_wiring_method"`
	MDBWiring MDBWiringMethod `json:"mdbWiringMethod" yaml:"mdb_wiring_method"`
}

// Canonical resolves aliases (form labels, "same"/"any", lower case
// authorities) and validates the request shape. The receiver is not modified.
func (r StationRequest) Canonical() (StationRequest, error) {
	out := r
	var err error
	if out.Authority, err = ParseAuthority(string(r.Authority)); err != nil {
		return StationRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if out.Mode, err = ParseMode(string(r.Mode)); err != nil {
		return StationRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if out.TRWiring, err = ParseTRWiringMethod(string(r.TRWiring)); err != nil {
		return StationRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if out.MDBWiring, err = ParseMDBWiringMethod(string(r.MDBWiring)); err != nil {
		return StationRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	out.Chargers = make([]ChargerClass, len(r.Chargers))
	for i, c := range r.Chargers {
		out.Chargers[i] = ChargerClass(strings.TrimSpace(string(c)))
	}
	if out.Mode == ModeUniform && out.Count == 0 {
		out.Count = 1
	}
	if err := out.Validate(); err != nil {
		return StationRequest{}, err
	}
	return out, nil
}

// Validate checks a canonical request. Errors wrap ErrInvalidRequest.
func (r StationRequest) Validate() error {
	if !r.Authority.Valid() {
		return fmt.Errorf("%w: unknown authority %q", ErrInvalidRequest, r.Authority)
	}
	if !r.TRWiring.Valid() {
		return fmt.Errorf("%w: unknown TR wiring method %q", ErrInvalidRequest, r.TRWiring)
	}
	if !r.MDBWiring.Valid() {
		return fmt.Errorf("%w: unknown MDB wiring method %q", ErrInvalidRequest, r.MDBWiring)
	}
	switch r.Mode {
	case ModeUniform:
		if len(r.Chargers) != 1 || r.Chargers[0].Empty() {
			return fmt.Errorf("%w: uniform mode needs exactly one charger class, got %d", ErrInvalidRequest, len(r.Chargers))
		}
		if r.Count < 1 || r.Count > MaxChargers {
			return fmt.Errorf("%w: charger count must be between 1 and %d, got %d", ErrInvalidRequest, MaxChargers, r.Count)
		}
	case ModeMixed:
		if len(r.Chargers) > MaxChargers {
			return fmt.Errorf("%w: at most %d charger positions, got %d", ErrInvalidRequest, MaxChargers, len(r.Chargers))
		}
		if r.Occupied() == 0 {
			return fmt.Errorf("%w: mixed mode needs at least one selected charger", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, r.Mode)
	}
	return nil
}

// Positions expands the request into one class per charger position.
func (r StationRequest) Positions() []ChargerClass {
	if r.Mode == ModeMixed {
		return append([]ChargerClass(nil), r.Chargers...)
	}
	n := r.Count
	if n < 1 {
		n = 1
	}
	var class ChargerClass
	if len(r.Chargers) > 0 {
		class = r.Chargers[0]
	}
	out := make([]ChargerClass, n)
	for i := range out {
		out[i] = class
	}
	return out
}

// Occupied returns the number of non-empty charger positions.
func (r StationRequest) Occupied() int {
	n := 0
	for _, c := range r.Positions() {
		if !c.Empty() {
			n++
		}
	}
	return n
}
