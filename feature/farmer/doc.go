// Package farmer serves administrative access to registered farmers: reading a
// registration and checking a presented NRC against the encrypted one on record.
//
// Registrations themselves arrive through the sync feature. Sub-packages hold the
// data model (models), record validation (validate) and persistence (store).
package farmer
