// Package zakat provides a set of functions and types for tracking personal
// wealth the way zakat accounting needs it: not as plain balances, but as
// dated lots of money whose age is known at all times. It is designed to be
// local-first, auditable, and version-control friendly.
//
// The core functionalities include:
//   - Box Ledger: every deposit becomes a box stamped with its entry time;
//     spends consume the newest boxes first and transfers preserve the
//     stamps, so the oldest funds keep maturing toward a full hawl.
//   - Exchange Rates: per-account, timestamped rates converting account
//     units into the valuation currency, looked up as of any instant.
//   - Zakat Assessment: a pure check that values every mature lot against
//     the nisab, individually and as a collective pool, and an apply step
//     that levies the due and restarts each lot's cycle.
//   - Payment Distribution: splitting a due amount over several accounts
//     proportionally to their balances.
//   - Audit History: an append-only record of every operation, grouped in
//     steps of one logical call each.
//   - Data Persistence: encoding and decoding the whole vault to a single
//     human-readable JSON document.
//
// This package serves as the foundational logic for the `zkt` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package zakat
