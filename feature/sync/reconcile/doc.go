// Package reconcile applies batches of farmer records, typically captured
// offline by field agents, to the registry.
//
// Each record goes through four stages:
//
//  1. Validate: every rule is checked; a failing record becomes an error outcome.
//  2. Seal: the NRC is encrypted and hashed, and the plaintext is dropped.
//  3. Resolve: one identity lookup, on the strongest signal the record carries
//     (temp_id, then nrc_hash, then phone_primary). A miss means "new farmer".
//  4. Write: update the matched farmer (last write wins) or create a new one with
//     a fresh ZM farmer id.
//
// Records are independent. A failed write or a failed encryption only affects the
// record concerned; a failed identity lookup means the store is unreachable, and
// aborts the batch. Outcomes are indexed by input position, so the report can be
// zipped with the submitted batch even when records run concurrently.
package reconcile
