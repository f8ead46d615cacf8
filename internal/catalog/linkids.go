// Package catalog maps the engine's well-known output link identifiers to
// names, so definition files can say "Behavior_Gate.Closed" instead of a
// bare integer.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// linkIDs holds the known link identifiers per behavior class. These values
// come from the engine's switch enumerations and are a fixed contract.
var linkIDs = map[string]map[string]int8{
	"Behavior_CompareValues": {
		"LessThan":           3,
		"LessThanOrEqual":    0,
		"Equal":              2,
		"GreaterThan":        1,
		"GreaterThanOrEqual": 4,
	},
	"Behavior_CompareFloat": {
		"LessThan":    0,
		"Equal":       1,
		"GreaterThan": 2,
	},
	"Behavior_CompareInt": {
		"LessThan":    0,
		"Equal":       1,
		"GreaterThan": 2,
	},
	"Behavior_CompareObject": {
		"Same":      0,
		"Different": 1,
	},
	"Behavior_CompareBool": {
		"IsTrue":  0,
		"IsFalse": 1,
	},
	"Behavior_Metronome": {
		"Tick": 1,
	},
	"Behavior_Gate": {
		"Open":   0,
		"Closed": 1,
	},
	"EDamageSourceSwitchValues": {
		"Grenade":          1,
		"Melee":            2,
		"Rocket":           3,
		"Skill":            4,
		"Statuseffect":     5,
		"RanIntoByVehicle": 6,
		"RanOverByVehicle": 7,
		"Crushed":          8,
		"Fall":             9,
		"Pistol":           10,
		"SubMachineGun":    11,
		"Shotgun":          12,
		"MachineGun":       13,
		"Sniper":           14,
		"CustomCrate":      15,
	},
	"Behavior_FireShot": {
		"FiredAllShots": 0,
		"FiredShot":     1,
	},
	"Behavior_SpawnProjectile": {
		"SpawnedAllProjectiles": 0,
		"SpawnedProjectile":     1,
	},
}

// Resolve looks up a qualified link name of the form "Class.Member", e.g.
// "Behavior_Gate.Closed".
func Resolve(name string) (int8, error) {
	class, member, ok := strings.Cut(name, ".")
	if !ok {
		return 0, fmt.Errorf("link name %q must be of the form Class.Member", name)
	}
	members, ok := linkIDs[class]
	if !ok {
		return 0, fmt.Errorf("unknown link class %q", class)
	}
	id, ok := members[member]
	if !ok {
		return 0, fmt.Errorf("link class %q has no member %q", class, member)
	}
	return id, nil
}

// Classes returns the known class names, sorted.
func Classes() []string {
	names := make([]string, 0, len(linkIDs))
	for name := range linkIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Members returns the member names of a class, sorted. The second return is
// false for an unknown class.
func Members(class string) ([]string, bool) {
	members, ok := linkIDs[class]
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}
