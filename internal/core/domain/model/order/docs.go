// Package order provides domain entities and business logic for order management
// in the storefront. It implements the Order aggregate root together with the
// line items it admits.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, ownership, and lifecycle
//   - Status: A two-state machine (open, closed) that guards status changes
//   - LineItem: A quantity of one product attached to one order
//
// Key business rules:
//   - An order always belongs to exactly one user and never changes owner
//   - Order status is always either open or closed
//   - The only transition is open -> closed; closed orders stay closed
//   - Line items are admitted only while the order is open
//   - Line item quantity and product reference must both be positive
//
// Identifiers are assigned by the store. A freshly constructed Order or
// LineItem has ID 0 until it has been persisted and restored.
package order
