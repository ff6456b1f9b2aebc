package model

// Placeholder is rendered for values that cannot be determined from the
// reference data (ladder overflow, unknown rows).
const Placeholder = "-"

// ChargerLine is the MDB to charger cable run of one charger position.
type ChargerLine struct {
	Label       string  `json:"label"`
	RatingKW    float64 `json:"ratingKW"`
	CableSpec   string  `json:"cableSpec"`
	ConduitSpec string  `json:"conduitSpec"`
}

// ChargerLineGroup is a display view of charger lines sharing a cable run.
// It is derived from ChargerLines and never stored.
type ChargerLineGroup struct {
	NormalizedKey    string   `json:"normalizedKey"`
	DisplayCableSpec string   `json:"displayCableSpec"`
	ConduitOptions   []string `json:"conduitOptions"`
	MemberIndices    []int    `json:"memberIndices"`
}

// Size returns the number of member positions.
func (g ChargerLineGroup) Size() int { return len(g.MemberIndices) }

// SizingResult is the electrical bill of quantities of one station.
//
// PerChargerCurrentA is nil when it has no single meaningful value: in mixed
// mode it is only set when exactly one position is occupied.
type SizingResult struct {
	Authority              Authority          `json:"authority"`
	Mode                   Mode               `json:"mode"`
	AggregatePowerKW       float64            `json:"aggregatePowerKW"`
	PerChargerCurrentA     *float64           `json:"perChargerCurrentA,omitempty"`
	AggregateCurrentA      float64            `json:"aggregateCurrentA"`
	ApparentPowerKVA       float64            `json:"apparentPowerKVA"`
	TransformerCapacityKVA string             `json:"transformerCapacityKVA"`
	TRCableSpec            string             `json:"trCableSpec"`
	TRConduitSpec          string             `json:"trConduitSpec"`
	MDBMainBreakerAT       string             `json:"mdbMainBreakerAT"`
	MDBMainBreakerAF       string             `json:"mdbMainBreakerAF"`
	MDBSubBreakers         []string           `json:"mdbSubBreakers"`
	ChargerLines           []ChargerLine      `json:"chargerLines"`
	ChargerGroups          []ChargerLineGroup `json:"chargerGroups"`
}
