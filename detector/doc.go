// Package detector judges vehicle position snapshots against a monitored
// area and decides which speeding events are new.
//
// Detection is edge triggered. The detector keeps no state of its own: the
// set of currently speeding vehicles is a value the caller passes in and
// receives back on every poll, so the same input always produces the same
// output.
package detector
