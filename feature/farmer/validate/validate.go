package validate

import (
	"math"
	"regexp"
	"strings"
	"time"

	"farmer-registry/core/clock"
	"farmer-registry/feature/farmer/models"
)

// Validation messages. Each rule produces its own message so callers can tell
// problems apart.
const (
	MsgInvalidNRC       = "Invalid NRC format"
	MsgInvalidDOB       = "Invalid date_of_birth format"
	MsgUnderage         = "Farmer must be at least 18 years old"
	MsgInvalidGPS       = "Invalid GPS coordinates"
	MsgLatitudeBounds   = "Latitude out of Zambia bounds"
	MsgLongitudeBounds  = "Longitude out of Zambia bounds"
	MsgPhoneCountryCode = "Phone must start with country code +260"
)

var nrcPattern = regexp.MustCompile(`^\d{6}/\d{2}/\d$`)

// Rules holds the national constants the validator checks against.
type Rules struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
	PhonePrefix  string
	MinAge       int
}

// ZambiaRules are the registry defaults.
func ZambiaRules() Rules {
	return Rules{
		MinLatitude:  -18.0,
		MaxLatitude:  -8.0,
		MinLongitude: 21.0,
		MaxLongitude: 34.0,
		PhonePrefix:  "+260",
		MinAge:       18,
	}
}

// Validator checks a single record. It is stateless apart from its rules and
// clock, and safe for concurrent use.
type Validator struct {
	rules Rules
	clock clock.Clock
}

// New creates a validator.
func New(rules Rules, clk clock.Clock) *Validator {
	return &Validator{rules: rules, clock: clk}
}

// Validate runs every rule and returns all violations, in rule order.
func (v *Validator) Validate(rec models.IncomingRecord) (bool, []string) {
	var errs []string
	p := rec.PersonalInfo

	if p.NRC != nil && *p.NRC != "" && !nrcPattern.MatchString(*p.NRC) {
		errs = append(errs, MsgInvalidNRC)
	}

	if p.DateOfBirth != nil && *p.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, *p.DateOfBirth)
		if err != nil {
			errs = append(errs, MsgInvalidDOB)
		} else if Age(dob, v.clock.Now()) < v.rules.MinAge {
			errs = append(errs, MsgUnderage)
		}
	}

	errs = append(errs, v.checkGPS(rec.Address)...)

	if !strings.HasPrefix(p.PhonePrimary, v.rules.PhonePrefix) {
		errs = append(errs, MsgPhoneCountryCode)
	}

	return len(errs) == 0, errs
}

func (v *Validator) checkGPS(a models.Address) []string {
	lat, lon := a.GPSLatitude, a.GPSLongitude
	if lat == nil || lon == nil {
		return nil
	}
	if !finite(lat) || !finite(lon) {
		return []string{MsgInvalidGPS}
	}

	var errs []string
	if !within(lat.Value, v.rules.MinLatitude, v.rules.MaxLatitude) {
		errs = append(errs, MsgLatitudeBounds)
	}
	if !within(lon.Value, v.rules.MinLongitude, v.rules.MaxLongitude) {
		errs = append(errs, MsgLongitudeBounds)
	}
	return errs
}

func finite(c *models.Coordinate) bool {
	return c.Valid && !math.IsNaN(c.Value) && !math.IsInf(c.Value, 0)
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// Age returns completed years between dob and now.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
