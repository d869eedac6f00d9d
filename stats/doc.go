// Package stats aggregates logged violations into weekly statistics.
//
// The default reporting window is the previous full week, Monday through
// Sunday, matching the weekly posting cadence of the statistics command.
package stats
