// Package store provides SQLite-backed storage for translation snapshots.
//
// A run groups the snapshots recorded in one `opflow record` invocation.
// Each snapshot ties a fixture to the content hashes of its input and of
// the Operation Tree and control-flow graph produced from it. Replaying a
// run translates every fixture again and reports any hash that moved.
//
// # Ordering
//
//   - Runs are ordered by seq, an INTEGER logical clock assigned on insert.
//     Wall time is never stored.
//   - Snapshot queries use ORDER BY fixture COLLATE BINARY so reads are
//     identical across replays.
//
// # Versioning
//
// Every run records ir.IRVersion. Replay refuses runs whose IR major
// version differs from the running binary, since their hashes describe a
// different dump schema.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON: snapshots must reference a run
//
// The store is tooling only. Nothing in operations or flow reads it.
package store
