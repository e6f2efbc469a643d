// Package services contains stateless domain services that operate across
// aggregates: delivery fee pricing from route distance and role-based
// visibility decisions for order views.
package services
