// Package repository implements data access over the relational store.
// This file defines sentinel errors shared across repositories so handlers
// can map failure scenarios onto distinct HTTP responses without inspecting
// SQL error strings.
package repository

import "errors"

// ErrRestaurantNotFound is returned when a restaurant id does not exist.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrBookingNotFound is returned when a booking update matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrMenuItemNotFound is returned when a menu item delete matches no row.
var ErrMenuItemNotFound = errors.New("menu item not found")

// ErrEventNotFound is returned when an event delete matches no row.
var ErrEventNotFound = errors.New("event not found")

// ErrNegativePrice is returned when a menu item is inserted with a price
// below zero.
var ErrNegativePrice = errors.New("price cannot be negative")
