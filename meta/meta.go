// meta/meta.go
package meta

// GO_ROUTINES defines the default number of goroutines for the counting search.
const GO_ROUTINES = 8

// SWEEP_HOPS defines the hunter's hop budget for a standing sweep.
const SWEEP_HOPS = 4

// SIMULATE_HOPS defines the hunter's hop budget per simulated round.
const SIMULATE_HOPS = 1

// ROUNDS defines the default number of simulated rounds.
const ROUNDS = 20
