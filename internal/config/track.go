package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/trackgeo/internal/geo"
	"github.com/banshee-data/trackgeo/internal/track/centerline"
	"github.com/banshee-data/trackgeo/internal/track/resample"
	"github.com/banshee-data/trackgeo/internal/units"
)

// DefaultConfigPath is the path to the canonical track defaults file.
// This is the single source of truth for all default pipeline values.
const DefaultConfigPath = "config/track.defaults.json"

// Bank angle modes.
const (
	BankComputed = "computed" // from the matched boundary geometry
	BankTable    = "table"    // from a (distance, bank_angle) table keyed by arc length
	BankSamples  = "samples"  // interpolated from sparse (abscissa, bank_angle) samples
	BankManual   = "manual"   // sparse samples entered interactively
)

// ValidBankModes lists the accepted bank_mode values.
var ValidBankModes = []string{BankComputed, BankTable, BankSamples, BankManual}

// TrackConfig holds every tunable of one reconstruction run. The schema is
// flat JSON; omitted fields fall back to the defaults returned by the Get*
// methods, so partial files are valid.
type TrackConfig struct {
	// Local tangent-plane origin
	OriginLat *float64 `json:"origin_lat,omitempty"`
	OriginLon *float64 `json:"origin_lon,omitempty"`
	OriginAlt *float64 `json:"origin_alt,omitempty"`

	// Survey intake
	HeaderRows       *int     `json:"header_rows,omitempty"`
	OutlierThreshold *float64 `json:"outlier_threshold,omitempty"` // metres

	// Height low-pass
	LowPassEnabled   *bool    `json:"low_pass_enabled,omitempty"`
	LowPassAlpha     *float64 `json:"low_pass_alpha,omitempty"`
	LowPassTolerance *float64 `json:"low_pass_tolerance,omitempty"`

	// Resampling
	ResampleCount *int    `json:"resample_count,omitempty"`
	Spline        *string `json:"spline,omitempty"`

	// Centerline
	SmoothingWindow *int     `json:"smoothing_window,omitempty"`
	Nearest         *string  `json:"nearest,omitempty"`
	BankAngleMin    *float64 `json:"bank_angle_min,omitempty"` // radians
	BankAngleMax    *float64 `json:"bank_angle_max,omitempty"` // radians
	BankAngleNegate *bool    `json:"bank_angle_negate,omitempty"`

	// Bank angle source
	BankMode           *string `json:"bank_mode,omitempty"`
	BankAngleUnits     *string `json:"bank_angle_units,omitempty"`
	ArcLengthPlanar    *bool   `json:"arc_length_planar,omitempty"`
	CandidateAbscissas *int    `json:"candidate_abscissas,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTrackConfig returns a TrackConfig with all fields set to nil.
// Use LoadTrackConfig to load actual values from the defaults file.
func EmptyTrackConfig() *TrackConfig {
	return &TrackConfig{}
}

// LoadTrackConfig loads a TrackConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTrackConfig(path string) (*TrackConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTrackConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadTrackConfigOrDefault loads path, or returns an empty config (all
// defaults) when path is empty.
func LoadTrackConfigOrDefault(path string) (*TrackConfig, error) {
	if path == "" {
		return EmptyTrackConfig(), nil
	}
	return LoadTrackConfig(path)
}

// MustLoadDefaultConfig loads the canonical track defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TrackConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/track/pipeline/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTrackConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TrackConfig) Validate() error {
	if c.OriginLat != nil && (*c.OriginLat < -90 || *c.OriginLat > 90) {
		return fmt.Errorf("origin_lat must be between -90 and 90, got %f", *c.OriginLat)
	}
	if c.OriginLon != nil && (*c.OriginLon < -180 || *c.OriginLon > 180) {
		return fmt.Errorf("origin_lon must be between -180 and 180, got %f", *c.OriginLon)
	}
	if (c.OriginLat == nil) != (c.OriginLon == nil) {
		return fmt.Errorf("origin_lat and origin_lon must be set together")
	}

	if c.HeaderRows != nil && *c.HeaderRows < 0 {
		return fmt.Errorf("header_rows must be non-negative, got %d", *c.HeaderRows)
	}
	if c.OutlierThreshold != nil && !(*c.OutlierThreshold > 0) {
		return fmt.Errorf("outlier_threshold must be positive, got %f", *c.OutlierThreshold)
	}

	if c.LowPassAlpha != nil && !(*c.LowPassAlpha > 0 && *c.LowPassAlpha <= 1) {
		return fmt.Errorf("low_pass_alpha must be in (0, 1], got %f", *c.LowPassAlpha)
	}
	if c.LowPassTolerance != nil && !(*c.LowPassTolerance >= 0) {
		return fmt.Errorf("low_pass_tolerance must be non-negative, got %f", *c.LowPassTolerance)
	}

	if c.ResampleCount != nil && *c.ResampleCount < 2 {
		return fmt.Errorf("resample_count must be at least 2, got %d", *c.ResampleCount)
	}
	if c.Spline != nil {
		if _, err := resample.ParseSplineKind(*c.Spline); err != nil {
			return fmt.Errorf("invalid spline '%s': %w", *c.Spline, err)
		}
	}

	if c.SmoothingWindow != nil && *c.SmoothingWindow < 0 {
		return fmt.Errorf("smoothing_window must be non-negative, got %d", *c.SmoothingWindow)
	}
	if c.Nearest != nil {
		if _, err := centerline.ParseStrategy(*c.Nearest); err != nil {
			return fmt.Errorf("invalid nearest '%s': %w", *c.Nearest, err)
		}
	}
	if (c.BankAngleMin == nil) != (c.BankAngleMax == nil) {
		return fmt.Errorf("bank_angle_min and bank_angle_max must be set together")
	}
	if c.BankAngleMin != nil && *c.BankAngleMin > *c.BankAngleMax {
		return fmt.Errorf("bank_angle_min %f exceeds bank_angle_max %f", *c.BankAngleMin, *c.BankAngleMax)
	}

	if c.BankMode != nil && !isBankMode(*c.BankMode) {
		return fmt.Errorf("invalid bank_mode '%s'", *c.BankMode)
	}
	if c.BankAngleUnits != nil && !units.IsValid(*c.BankAngleUnits) {
		return fmt.Errorf("invalid bank_angle_units '%s', want one of %s", *c.BankAngleUnits, units.GetValidUnitsString())
	}
	if c.CandidateAbscissas != nil && *c.CandidateAbscissas < 2 {
		return fmt.Errorf("candidate_abscissas must be at least 2, got %d", *c.CandidateAbscissas)
	}

	return nil
}

func isBankMode(s string) bool {
	for _, m := range ValidBankModes {
		if s == m {
			return true
		}
	}
	return false
}

// Origin returns the configured tangent-plane origin. ok is false when no
// origin latitude/longitude has been set.
func (c *TrackConfig) Origin() (o geo.Origin, ok bool) {
	if c.OriginLat == nil || c.OriginLon == nil {
		return geo.Origin{}, false
	}
	return geo.Origin{Lat: *c.OriginLat, Lon: *c.OriginLon, Alt: c.GetOriginAlt()}, true
}

// SetOrigin overrides the origin, typically from command-line flags.
func (c *TrackConfig) SetOrigin(o geo.Origin) {
	c.OriginLat = ptrFloat64(o.Lat)
	c.OriginLon = ptrFloat64(o.Lon)
	c.OriginAlt = ptrFloat64(o.Alt)
}

// GetOriginAlt returns the origin_alt value or the default.
func (c *TrackConfig) GetOriginAlt() float64 {
	if c.OriginAlt == nil {
		return 0
	}
	return *c.OriginAlt
}

// GetHeaderRows returns the header_rows value or the default.
func (c *TrackConfig) GetHeaderRows() int {
	if c.HeaderRows == nil {
		return 1
	}
	return *c.HeaderRows
}

// GetOutlierThreshold returns the outlier_threshold value or the default.
func (c *TrackConfig) GetOutlierThreshold() float64 {
	if c.OutlierThreshold == nil {
		return 100.0
	}
	return *c.OutlierThreshold
}

// GetLowPassEnabled returns the low_pass_enabled value or the default.
func (c *TrackConfig) GetLowPassEnabled() bool {
	if c.LowPassEnabled == nil {
		return true
	}
	return *c.LowPassEnabled
}

// GetLowPassAlpha returns the low_pass_alpha value or the default.
func (c *TrackConfig) GetLowPassAlpha() float64 {
	if c.LowPassAlpha == nil {
		return 0.08
	}
	return *c.LowPassAlpha
}

// GetLowPassTolerance returns the low_pass_tolerance value or the default.
func (c *TrackConfig) GetLowPassTolerance() float64 {
	if c.LowPassTolerance == nil {
		return 0 // emit on any change
	}
	return *c.LowPassTolerance
}

// GetResampleCount returns the resample_count value or the default.
func (c *TrackConfig) GetResampleCount() int {
	if c.ResampleCount == nil {
		return 400
	}
	return *c.ResampleCount
}

// GetSpline returns the spline kind or the default.
func (c *TrackConfig) GetSpline() resample.SplineKind {
	if c.Spline == nil {
		return resample.NotAKnot
	}
	k, err := resample.ParseSplineKind(*c.Spline)
	if err != nil {
		return resample.NotAKnot // default on parse error
	}
	return k
}

// GetSmoothingWindow returns the smoothing_window value or the default.
func (c *TrackConfig) GetSmoothingWindow() int {
	if c.SmoothingWindow == nil {
		return 3
	}
	return *c.SmoothingWindow
}

// GetNearest returns the nearest-point strategy name or the default.
func (c *TrackConfig) GetNearest() string {
	if c.Nearest == nil || *c.Nearest == "" {
		return centerline.StrategyBrute
	}
	return *c.Nearest
}

// GetBankAngleClamp returns the clamp range, or nil when unclamped.
func (c *TrackConfig) GetBankAngleClamp() *centerline.AngleRange {
	if c.BankAngleMin == nil || c.BankAngleMax == nil {
		return nil
	}
	return &centerline.AngleRange{Min: *c.BankAngleMin, Max: *c.BankAngleMax}
}

// GetBankAngleNegate returns the bank_angle_negate value or the default.
func (c *TrackConfig) GetBankAngleNegate() bool {
	if c.BankAngleNegate == nil {
		return false
	}
	return *c.BankAngleNegate
}

// GetBankMode returns the bank_mode value or the default.
func (c *TrackConfig) GetBankMode() string {
	if c.BankMode == nil || *c.BankMode == "" {
		return BankComputed
	}
	return *c.BankMode
}

// GetBankAngleUnits returns the units bank tables are written in.
func (c *TrackConfig) GetBankAngleUnits() string {
	if c.BankAngleUnits == nil || *c.BankAngleUnits == "" {
		return units.Radians
	}
	return *c.BankAngleUnits
}

// GetArcLengthPlanar returns the arc_length_planar value or the default.
func (c *TrackConfig) GetArcLengthPlanar() bool {
	if c.ArcLengthPlanar == nil {
		return true
	}
	return *c.ArcLengthPlanar
}

// GetCandidateAbscissas returns the candidate_abscissas value or the default.
func (c *TrackConfig) GetCandidateAbscissas() int {
	if c.CandidateAbscissas == nil {
		return 100
	}
	return *c.CandidateAbscissas
}
