package model

import (
	"fmt"
	"strings"
)

// TRWiringMethod is the installation method of the transformer to MDB run.
type TRWiringMethod string

const (
	TRConduitAir    TRWiringMethod = "conduit_air"
	TRConduitBuried TRWiringMethod = "conduit_buried"
	TRTray          TRWiringMethod = "tray"
	TRLadder        TRWiringMethod = "ladder"
)

// MDBWiringMethod is the installation method of the MDB to charger runs.
type MDBWiringMethod string

const (
	MDBConduitAir    MDBWiringMethod = "conduit_air"
	MDBConduitBuried MDBWiringMethod = "conduit_buried"
)

// MethodInfo describes a wiring method for catalogs and forms.
type MethodInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	// Aliases are the labels used by the sales form and the reference workbook.
	Aliases []string `json:"aliases,omitempty"`
}

var trMethods = []MethodInfo{
	{Key: string(TRConduitAir), Label: "Conduit in free air, group 2", Aliases: []string{"ร้อยท่อเดินในอากาศ กลุ่ม 2"}},
	{Key: string(TRConduitBuried), Label: "Buried conduit, group 5", Aliases: []string{"ร้อยท่อฝังใต้ดิน กลุ่ม 5"}},
	{Key: string(TRTray), Label: "Open cable tray", Aliases: []string{"ราง TRAY ไม่มีฝา"}},
	{Key: string(TRLadder), Label: "Open cable ladder", Aliases: []string{"ราง LADDER ไม่มีฝา"}},
}

var mdbMethods = []MethodInfo{
	{Key: string(MDBConduitAir), Label: "3P 4W in conduit, group 2, free air", Aliases: []string{"ขนาดสายไฟ 3P 4W ร้อยท่อ กลุ่ม 2 เดินในอากาศ"}},
	{Key: string(MDBConduitBuried), Label: "3P 4W in conduit, group 5, buried", Aliases: []string{"ขนาดสายไฟ 3P 4W ร้อยท่อ กลุ่ม 5 ฝังใต้ดิน"}},
}

// TRMethods returns the transformer to MDB wiring methods.
func TRMethods() []MethodInfo { return append([]MethodInfo(nil), trMethods...) }

// MDBMethods returns the MDB to charger wiring methods.
func MDBMethods() []MethodInfo { return append([]MethodInfo(nil), mdbMethods...) }

func lookupMethod(methods []MethodInfo, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, m := range methods {
		if strings.EqualFold(m.Key, s) || m.Label == s {
			return m.Key, true
		}
		for _, a := range m.Aliases {
			if a == s {
				return m.Key, true
			}
		}
	}
	return "", false
}

// ParseTRWiringMethod accepts a method key, its label or one of its aliases.
func ParseTRWiringMethod(s string) (TRWiringMethod, error) {
	key, ok := lookupMethod(trMethods, s)
	if !ok {
		return "", fmt.Errorf("unknown TR wiring method %q", s)
	}
	return TRWiringMethod(key), nil
}

// ParseMDBWiringMethod accepts a method key, its label or one of its aliases.
func ParseMDBWiringMethod(s string) (MDBWiringMethod, error) {
	key, ok := lookupMethod(mdbMethods, s)
	if !ok {
		return "", fmt.Errorf("unknown MDB wiring method %q", s)
	}
	return MDBWiringMethod(key), nil
}

func hasKey(methods []MethodInfo, key string) bool {
	for _, m := range methods {
		if m.Key == key {
			return true
		}
	}
	return false
}

// Valid reports whether m is a known TR wiring method key.
func (m TRWiringMethod) Valid() bool { return hasKey(trMethods, string(m)) }

// Valid reports whether m is a known MDB wiring method key.
func (m MDBWiringMethod) Valid() bool { return hasKey(mdbMethods, string(m)) }
