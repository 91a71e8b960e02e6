package validate

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"farmer-registry/core/clock"
	"farmer-registry/core/utils"
	"farmer-registry/feature/farmer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

func newValidator() *Validator {
	return New(ZambiaRules(), clock.Fixed(today))
}

func validRecord() models.IncomingRecord {
	return models.IncomingRecord{
		PersonalInfo: models.PersonalInfo{
			FirstName:    "Mwila",
			LastName:     "Banda",
			PhonePrimary: "+260971234567",
		},
		Address: models.Address{Province: "LSK", District: "Chongwe"},
	}
}

func TestValidate_Valid(t *testing.T) {
	rec := validRecord()
	rec.PersonalInfo.NRC = utils.Ptr("123456/78/9")
	rec.PersonalInfo.DateOfBirth = utils.Ptr("1980-05-01")
	rec.Address.GPSLatitude = models.NewCoordinate(-15.0)
	rec.Address.GPSLongitude = models.NewCoordinate(28.0)

	ok, errs := newValidator().Validate(rec)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.IncomingRecord)
		want   []string
	}{
		{"NRCValid", func(r *models.IncomingRecord) { r.PersonalInfo.NRC = utils.Ptr("123456/78/9") }, nil},
		{"NRCShort", func(r *models.IncomingRecord) { r.PersonalInfo.NRC = utils.Ptr("12345/78/9") }, []string{MsgInvalidNRC}},
		{"NRCLetters", func(r *models.IncomingRecord) { r.PersonalInfo.NRC = utils.Ptr("12345a/78/9") }, []string{MsgInvalidNRC}},
		{"NRCTrailing", func(r *models.IncomingRecord) { r.PersonalInfo.NRC = utils.Ptr("123456/78/90") }, []string{MsgInvalidNRC}},
		{"DOBBadFormat", func(r *models.IncomingRecord) { r.PersonalInfo.DateOfBirth = utils.Ptr("01/05/1980") }, []string{MsgInvalidDOB}},
		{"DOBImpossible", func(r *models.IncomingRecord) { r.PersonalInfo.DateOfBirth = utils.Ptr("1980-02-30") }, []string{MsgInvalidDOB}},
		{"DOBUnderage", func(r *models.IncomingRecord) { r.PersonalInfo.DateOfBirth = utils.Ptr("2010-01-01") }, []string{MsgUnderage}},
		{"DOBEighteenToday", func(r *models.IncomingRecord) { r.PersonalInfo.DateOfBirth = utils.Ptr("2008-10-16") }, nil},
		{"DOBEighteenTomorrow", func(r *models.IncomingRecord) { r.PersonalInfo.DateOfBirth = utils.Ptr("2008-10-17") }, []string{MsgUnderage}},
		{"DOBFuture", func(r *models.IncomingRecord) { r.PersonalInfo.DateOfBirth = utils.Ptr("2030-01-01") }, []string{MsgUnderage}},
		{"GPSInBounds", func(r *models.IncomingRecord) {
			r.Address.GPSLatitude, r.Address.GPSLongitude = models.NewCoordinate(-15.0), models.NewCoordinate(28.0)
		}, nil},
		{"GPSLatitudeOut", func(r *models.IncomingRecord) {
			r.Address.GPSLatitude, r.Address.GPSLongitude = models.NewCoordinate(10.0), models.NewCoordinate(28.0)
		}, []string{MsgLatitudeBounds}},
		{"GPSLongitudeOut", func(r *models.IncomingRecord) {
			r.Address.GPSLatitude, r.Address.GPSLongitude = models.NewCoordinate(-15.0), models.NewCoordinate(40.0)
		}, []string{MsgLongitudeBounds}},
		{"GPSBothOut", func(r *models.IncomingRecord) {
			r.Address.GPSLatitude, r.Address.GPSLongitude = models.NewCoordinate(0), models.NewCoordinate(0)
		}, []string{MsgLatitudeBounds, MsgLongitudeBounds}},
		{"GPSOnlyOne", func(r *models.IncomingRecord) { r.Address.GPSLatitude = models.NewCoordinate(50.0) }, nil},
		{"GPSNotNumeric", func(r *models.IncomingRecord) {
			r.Address.GPSLatitude, r.Address.GPSLongitude = &models.Coordinate{Raw: `"north"`}, models.NewCoordinate(28.0)
		}, []string{MsgInvalidGPS}},
		{"GPSNaN", func(r *models.IncomingRecord) {
			r.Address.GPSLatitude, r.Address.GPSLongitude = &models.Coordinate{Value: math.NaN(), Valid: true}, models.NewCoordinate(28.0)
		}, []string{MsgInvalidGPS}},
		{"GPSInfinite", func(r *models.IncomingRecord) {
			r.Address.GPSLatitude, r.Address.GPSLongitude = models.NewCoordinate(-15.0), &models.Coordinate{Value: math.Inf(1), Valid: true}
		}, []string{MsgInvalidGPS}},
		{"PhoneLocal", func(r *models.IncomingRecord) { r.PersonalInfo.PhonePrimary = "0971234567" }, []string{MsgPhoneCountryCode}},
		{"PhoneMissing", func(r *models.IncomingRecord) { r.PersonalInfo.PhonePrimary = "" }, []string{MsgPhoneCountryCode}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			ok, errs := newValidator().Validate(rec)
			assert.Equal(t, len(tt.want) == 0, ok)
			assert.Equal(t, tt.want, errs)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	rec := models.IncomingRecord{
		PersonalInfo: models.PersonalInfo{
			PhonePrimary: "0000000000",
			NRC:          utils.Ptr("bad"),
			DateOfBirth:  utils.Ptr("yesterday"),
		},
		Address: models.Address{
			GPSLatitude:  models.NewCoordinate(10.0),
			GPSLongitude: models.NewCoordinate(28.0),
		},
	}

	ok, errs := newValidator().Validate(rec)
	assert.False(t, ok)
	assert.Equal(t, []string{MsgInvalidNRC, MsgInvalidDOB, MsgLatitudeBounds, MsgPhoneCountryCode}, errs)
}

func TestValidate_DecodedStringCoordinates(t *testing.T) {
	var rec models.IncomingRecord
	body := `{"personal_info":{"phone_primary":"+260971234567"},"address":{"gps_latitude":"-15.4","gps_longitude":"east"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &rec))

	ok, errs := newValidator().Validate(rec)
	assert.False(t, ok)
	assert.Equal(t, []string{MsgInvalidGPS}, errs)
}

func TestAge(t *testing.T) {
	dob := time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 17, Age(dob, time.Date(2018, time.February, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18, Age(dob, time.Date(2018, time.March, 1, 0, 0, 0, 0, time.UTC)))
}
