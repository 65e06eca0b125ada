// Package testutil provides shared test helpers and fixtures for autoflow.
//
// Philosophy:
// - Prefer real files and real JSONL over mocks.
// - Keep helpers small, composable, and deterministic.
// - Register cleanup via t.Cleanup so tests stay leak-free.
package testutil
