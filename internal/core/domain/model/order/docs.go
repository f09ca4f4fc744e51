// Package order models marketplace orders with line items, freight and express
// tracking.
//
// Status transitions:
//
//	Pending ──> Paid ──> Delivered ──> Completed
//	   │         │  │                      │
//	   │         │  └──────> Refunded <────┘
//	   ▼         ▼
//	Cancelled <──┘
//
// Cancelled and Refunded are terminal.
package order
