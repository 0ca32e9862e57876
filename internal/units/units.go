// Package units provides shared constants and validation for angle units
package units

import "math"

// Unit constants
const (
	Radians = "rad"
	Degrees = "deg"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Radians, Degrees}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "rad, deg"
}

// ToRadians converts an angle expressed in the given units to radians.
// Bank angles are carried in radians everywhere inside the pipeline.
func ToRadians(angle float64, fromUnits string) float64 {
	switch fromUnits {
	case Degrees:
		return angle * math.Pi / 180
	default:
		return angle // already radians, or unknown
	}
}

// FromRadians converts an angle in radians to the target units.
func FromRadians(angle float64, targetUnits string) float64 {
	switch targetUnits {
	case Degrees:
		return angle * 180 / math.Pi
	default:
		return angle
	}
}
