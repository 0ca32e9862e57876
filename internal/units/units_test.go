package units

import (
	"math"
	"testing"
)

func TestToRadians(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		units    string
		expected float64
	}{
		{"180 deg", 180, Degrees, math.Pi},
		{"4 deg minimum bank", 4, Degrees, 0.0698132},
		{"17 deg maximum bank", 17, Degrees, 0.296706},
		{"negative deg", -90, Degrees, -math.Pi / 2},
		{"radians unchanged", 0.25, Radians, 0.25},
		{"unknown units default to radians", 0.25, "grad", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToRadians(tt.angle, tt.units)
			if math.Abs(result-tt.expected) > 1e-6 {
				t.Errorf("ToRadians(%f, %s) = %f, want %f", tt.angle, tt.units, result, tt.expected)
			}
		})
	}
}

func TestFromRadiansRoundTrip(t *testing.T) {
	for _, u := range ValidUnits {
		for _, a := range []float64{-1.2, 0, 0.3, math.Pi} {
			got := ToRadians(FromRadians(a, u), u)
			if math.Abs(got-a) > 1e-12 {
				t.Errorf("round trip %s: %f -> %f", u, a, got)
			}
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid rad", Radians, true},
		{"valid deg", Degrees, true},
		{"invalid unit", "invalid", false},
		{"empty string", "", false},
		{"case sensitive", "DEG", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	expected := "rad, deg"
	result := GetValidUnitsString()
	if result != expected {
		t.Errorf("GetValidUnitsString() = %s, want %s", result, expected)
	}
}
