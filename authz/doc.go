// Package authz evaluates access policies for chat resources.
//
// The package centralizes authentication, role, and ownership checks so
// transport handlers and background workers can call one evaluator instead
// of duplicating permission logic. Evaluators are pure: they read the
// identity, claims, and resource values they are given, never touch storage
// or the network, and always return an explicit decision with a reason code.
// Absent inputs are modeled as zero values and evaluated as denials, never
// as errors.
package authz
