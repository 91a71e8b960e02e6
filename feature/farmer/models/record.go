package models

import (
	"bytes"
	"encoding/json"

	"farmer-registry/core/utils"
)

// IncomingRecord is a farmer registration submitted by a field agent, possibly
// captured offline. It is not persisted as-is.
type IncomingRecord struct {
	// TempID is the client-local correlation id assigned on the device.
	TempID       *string      `json:"temp_id"`
	PersonalInfo PersonalInfo `json:"personal_info"`
	Address      Address      `json:"address"`
	FarmInfo     *FarmInfo    `json:"farm_info,omitempty"`
}

// PersonalInfo holds identity and contact fields.
type PersonalInfo struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	PhonePrimary   string  `json:"phone_primary"`
	PhoneSecondary *string `json:"phone_secondary,omitempty"`
	Email          *string `json:"email,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	DateOfBirth    *string `json:"date_of_birth,omitempty"`
	// NRC is the plaintext national registration card number. It is encrypted
	// and discarded before persistence.
	NRC *string `json:"nrc,omitempty"`
}

// Address locates the farmer.
type Address struct {
	Province     string      `json:"province"`
	District     string      `json:"district"`
	ProvinceName *string     `json:"province_name,omitempty"`
	DistrictName *string     `json:"district_name,omitempty"`
	ChiefdomName *string     `json:"chiefdom_name,omitempty"`
	Village      *string     `json:"village,omitempty"`
	GPSLatitude  *Coordinate `json:"gps_latitude,omitempty"`
	GPSLongitude *Coordinate `json:"gps_longitude,omitempty"`
}

// FarmInfo describes the holding.
type FarmInfo struct {
	FarmSizeHectares float64  `json:"farm_size_hectares"`
	CropsGrown       []string `json:"crops_grown"`
	LivestockTypes   []string `json:"livestock_types"`
	HasIrrigation    bool     `json:"has_irrigation"`
	YearsFarming     int      `json:"years_farming"`
}

// Coordinate is a GPS component. Devices send numbers or numeric strings; any
// other value decodes into an invalid Coordinate instead of failing the body.
type Coordinate struct {
	Value float64
	Valid bool
	Raw   string
}

// NewCoordinate returns a valid coordinate.
func NewCoordinate(v float64) *Coordinate {
	return &Coordinate{Value: v, Valid: true}
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	c.Raw = string(data)
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		c.Valid = false
		return nil
	}
	c.Value, c.Valid = utils.ToFloat(v)
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	if c.Valid {
		return json.Marshal(c.Value)
	}
	if c.Raw != "" && json.Valid([]byte(c.Raw)) {
		return bytes.Clone([]byte(c.Raw)), nil
	}
	return []byte("null"), nil
}

// Float returns the coordinate value, or nil when absent or invalid.
func (c *Coordinate) Float() *float64 {
	if c == nil || !c.Valid {
		return nil
	}
	v := c.Value
	return &v
}
