// Package order contains the Order aggregate root and its Status state
// machine.
//
// An order is created Pending at customer checkout and moves through
// RestaurantAccepted, ReadyForPickup, PickedUp and Delivered, with
// Cancelled reachable from the two pre-preparation states. Every status
// change is a role-gated transition method on the aggregate; the Status
// value object enforces the transition table while the aggregate enforces
// the acting role and ownership.
//
// Driver self-assignment (Claim) is the single point where independent
// actors race for the same order. The aggregate validates the claim, but
// the authoritative first-claimer-wins decision is a conditional update at
// the persistence layer.
package order
