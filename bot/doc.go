// Package bot runs the polling loop: fetch vehicle positions, detect new
// violations and report each one by logging it to CSV, rendering a figure
// and posting it.
//
// The loop is a single goroutine. Collaborators are injected through narrow
// interfaces so the loop can be exercised end to end with fakes.
package bot
