// Package aggregates defines the write boundaries of the learner flow.
//
// Contracts here carry no persistence detail; implementations live in
// internal/data/aggregates and enforce the hearts/points invariants atomically.
package aggregates
