// Package validate checks farmer records before they enter the sync pipeline.
//
// Validate never fails fast: it reports every violated rule (NRC format, date of
// birth format and minimum age, GPS bounds, phone country code) so a field agent
// can fix a record in one pass.
package validate
