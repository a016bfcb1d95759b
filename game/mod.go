// Package game models the pursuit board: a hunter that moves by knight jumps
// and prey that advance one row per turn until they are caught or escape.
package game

// StateHash is a 64-bit FNV-1a digest of a State's canonical key. Distinct
// states may collide, so it selects buckets and never stands in for the key.
type StateHash uint64
