// Package store persists farmers.
//
// Lookups are point queries on single indexed columns (temp_id, nrc_hash,
// phone_primary, farmer_id); writes are point inserts or full-row saves keyed by
// the primary key. No operation spans more than one farmer, so concurrent sync
// jobs and API requests share the database without global locks and conflicting
// writes resolve as last-write-wins.
package store
