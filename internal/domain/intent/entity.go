package intent

import (
	"fmt"
	"strings"
)

// Entity is a topical facet detected in a question.
type Entity uint8

// Entities. Several (pool, registration, schedule, rules) have no keywords
// and only appear as labels on knowledge entries.
const (
	EntityUnknown Entity = iota
	EntityFacility
	EntityPool
	EntityLapSwim
	EntityTeenLapSwim
	EntityRecSwim
	EntityLessons
	EntitySafety
	EntityAmenity
	EntityChildren
	EntityDeepWater
	EntityEquipment
	EntityProhibited
	EntityRefund
	EntityRegistration
	EntitySchedule
	EntityAge
	EntityRules
	EntityGuardian
)

var entityNames = [...]string{
	EntityUnknown:      "unknown",
	EntityFacility:     "facility",
	EntityPool:         "pool",
	EntityLapSwim:      "lap_swim",
	EntityTeenLapSwim:  "teen_lap_swim",
	EntityRecSwim:      "rec_swim",
	EntityLessons:      "lessons",
	EntitySafety:       "safety",
	EntityAmenity:      "amenity",
	EntityChildren:     "children",
	EntityDeepWater:    "deep_water",
	EntityEquipment:    "equipment",
	EntityProhibited:   "prohibited",
	EntityRefund:       "refund",
	EntityRegistration: "registration",
	EntitySchedule:     "schedule",
	EntityAge:          "age",
	EntityRules:        "rules",
	EntityGuardian:     "guardian",
}

// String returns the wire label, e.g. "lap_swim".
func (e Entity) String() string {
	if int(e) < len(entityNames) {
		return entityNames[e]
	}
	return entityNames[EntityUnknown]
}

// DisplayName returns the label with underscores replaced by spaces.
func (e Entity) DisplayName() string {
	return strings.ReplaceAll(e.String(), "_", " ")
}

// MarshalText implements encoding.TextMarshaler.
func (e Entity) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Entity) UnmarshalText(b []byte) error {
	parsed, err := ParseEntity(string(b))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseEntity maps a wire label back to an Entity.
func ParseEntity(s string) (Entity, error) {
	for i, name := range entityNames {
		if name == s {
			return Entity(i), nil
		}
	}
	return EntityUnknown, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// EntityStrings converts entities to their wire labels.
func EntityStrings(entities []Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.String()
	}
	return out
}

// EntityLabels returns every known entity label except "unknown".
func EntityLabels() []string {
	return append([]string(nil), entityNames[EntityUnknown+1:]...)
}
