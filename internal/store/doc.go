// Package store provides SQLite-backed history of inference runs.
//
// Each run records the dataset it was computed from (path and digest), the
// winning co-factor with its vote count, and one entry per combo starter.
// The base correction of every entry is the run's factor divided by 100, so
// only the integer factor is stored.
//
// # Ordering
//
// Runs are stamped with a logical seq assigned inside the write transaction
// (MAX(seq)+1). Listings order by seq, never by wall-clock time, so history is
// identical across machines and clock changes.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Cascade entry deletion with their run
package store
