package models

import (
	"strings"
	"time"

	"farmer-registry/core/utils"

	"github.com/google/uuid"
)

// FarmerIDPrefix is the country prefix of every farmer id.
const FarmerIDPrefix = "ZM"

// Registration statuses.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Farmer is a persisted registry entry. The plaintext NRC is never stored.
type Farmer struct {
	ID       uint    `gorm:"column:id;primaryKey" json:"-"`
	FarmerID string  `gorm:"column:farmer_id;size:16;uniqueIndex" json:"farmer_id"`
	TempID   *string `gorm:"column:temp_id;size:64;index" json:"temp_id"`

	FirstName      string  `gorm:"column:first_name;size:100" json:"first_name"`
	LastName       string  `gorm:"column:last_name;size:100" json:"last_name"`
	PhonePrimary   string  `gorm:"column:phone_primary;size:20;index" json:"phone_primary"`
	PhoneSecondary *string `gorm:"column:phone_secondary;size:20" json:"phone_secondary,omitempty"`
	Email          *string `gorm:"column:email;size:255" json:"email,omitempty"`
	Gender         *string `gorm:"column:gender;size:16" json:"gender,omitempty"`
	DateOfBirth    *string `gorm:"column:date_of_birth;size:10" json:"date_of_birth,omitempty"`
	NRCEncrypted   *string `gorm:"column:nrc_encrypted;size:255" json:"-"`
	NRCHash        *string `gorm:"column:nrc_hash;size:64;index" json:"-"`

	Province     string   `gorm:"column:province;size:64" json:"province"`
	District     string   `gorm:"column:district;size:64" json:"district"`
	ProvinceName *string  `gorm:"column:province_name;size:128" json:"province_name,omitempty"`
	DistrictName *string  `gorm:"column:district_name;size:128" json:"district_name,omitempty"`
	ChiefdomName *string  `gorm:"column:chiefdom_name;size:128" json:"chiefdom_name,omitempty"`
	Village      *string  `gorm:"column:village;size:128" json:"village,omitempty"`
	GPSLatitude  *float64 `gorm:"column:gps_latitude" json:"gps_latitude,omitempty"`
	GPSLongitude *float64 `gorm:"column:gps_longitude" json:"gps_longitude,omitempty"`

	FarmInfo *FarmInfo `gorm:"column:farm_info;serializer:json" json:"farm_info,omitempty"`

	RegistrationStatus string     `gorm:"column:registration_status;size:16;default:pending" json:"registration_status"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	CreatedBy          string     `gorm:"column:created_by;size:255" json:"created_by"`
	UpdatedAt          *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
	LastModifiedBy     *string    `gorm:"column:last_modified_by;size:255" json:"last_modified_by,omitempty"`
}

// TableName overrides the table name.
func (Farmer) TableName() string {
	return "farmers"
}

// Columns lists the columns the registry reads and writes.
func Columns() []string {
	return []string{
		"id", "farmer_id", "temp_id", "first_name", "last_name", "phone_primary",
		"phone_secondary", "email", "gender", "date_of_birth", "nrc_encrypted", "nrc_hash",
		"province", "district", "province_name", "district_name", "chiefdom_name", "village",
		"gps_latitude", "gps_longitude", "farm_info", "registration_status",
		"created_at", "created_by", "updated_at", "last_modified_by",
	}
}

// NewFarmerID returns "ZM" followed by eight uppercase hex characters.
func NewFarmerID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return FarmerIDPrefix + strings.ToUpper(hex[:8])
}

// ApplyRecord overwrites the farmer's mutable fields with the record's. Required
// fields are always replaced; optional fields only when the record carries a
// non-blank value.
// The NRC is not touched here: it is sealed separately.
func (f *Farmer) ApplyRecord(rec IncomingRecord) {
	setIfPresent(&f.TempID, utils.NonEmpty(rec.TempID))

	p := rec.PersonalInfo
	f.FirstName = p.FirstName
	f.LastName = p.LastName
	f.PhonePrimary = p.PhonePrimary
	setIfPresent(&f.PhoneSecondary, utils.NonEmpty(p.PhoneSecondary))
	setIfPresent(&f.Email, utils.NonEmpty(p.Email))
	setIfPresent(&f.Gender, utils.NonEmpty(p.Gender))
	setIfPresent(&f.DateOfBirth, utils.NonEmpty(p.DateOfBirth))

	a := rec.Address
	f.Province = a.Province
	f.District = a.District
	setIfPresent(&f.ProvinceName, utils.NonEmpty(a.ProvinceName))
	setIfPresent(&f.DistrictName, utils.NonEmpty(a.DistrictName))
	setIfPresent(&f.ChiefdomName, utils.NonEmpty(a.ChiefdomName))
	setIfPresent(&f.Village, utils.NonEmpty(a.Village))
	if lat, lon := a.GPSLatitude.Float(), a.GPSLongitude.Float(); lat != nil && lon != nil {
		f.GPSLatitude = lat
		f.GPSLongitude = lon
	}

	if rec.FarmInfo != nil {
		info := *rec.FarmInfo
		f.FarmInfo = &info
	}
}

func setIfPresent[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
