// Package digest computes content-addressed identities for combo datasets.
//
// A digest is SHA-256 over a domain prefix, a NUL separator and the RFC 8785
// canonical JSON of the value. Canonical JSON sorts object keys by UTF-16
// code units, NFC-normalizes strings, escapes only what JSON requires, and
// rejects floats and nulls. Two datasets with equal digests produce equal
// inference results.
package digest
