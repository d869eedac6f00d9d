// Package utils provides internal utility functions for nopeusbotti.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Time formatting and conversion utilities
//   - Speed unit conversion
//   - Logging initialization
//   - Shared constants
package utils
