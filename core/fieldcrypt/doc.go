// Package fieldcrypt implements deterministic encryption for single sensitive
// fields such as national registration card numbers.
//
// The key is the SHA-256 digest of the server secret, the nonce is derived from a
// digest of the plaintext, and the cipher is AES-256-GCM. Identical plaintexts
// therefore produce identical ciphertexts. A keyed HMAC-SHA256 of the plaintext is
// produced alongside the ciphertext and is the only value meant for equality
// lookups.
//
// Because the nonce depends on the plaintext, Decrypt needs a candidate plaintext:
// recovery is limited to confirming that a known value matches what is stored.
// Rotating the secret invalidates every stored hash and ciphertext.
package fieldcrypt
