// Package c2corder models consumer-to-consumer orders that can be escalated to
// notarization. It is the reference record kind: every other kind follows the
// same aggregate, status and event conventions.
//
// Status transitions:
//
//	Pending ──> Paid ──> Delivered ──> Completed
//	   │         │           │            ▲
//	   │         │           ▼            │
//	   ├─────────┴──────> Notarizing ─────┤
//	   │         │           │
//	   ▼         ▼           ▼
//	Cancelled <──────────────┘
//
// Cancelled and Completed are terminal.
package c2corder
