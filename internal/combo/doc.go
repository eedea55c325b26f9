// Package combo defines the combo dataset model and loads it from YAML.
//
// A dataset is a top-level sequence of combos; each combo is an ordered
// sequence of waza (actions) with an identifier and a raw damage value:
//
//	- - id: 5A
//	    dm: 300
//	  - id: 2B
//	    dm: 780
//
// Loading is strict. The document is first checked against an embedded CUE
// schema (non-empty ids, non-negative integer damage, no unknown fields) and
// then decoded with yaml.v3 KnownFields enabled. Identifiers are NFC
// normalized so that visually identical move names compare equal.
package combo
