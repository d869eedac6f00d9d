// Package digitransit looks up route metadata from the Digitransit routing
// API for figure captions.
//
// Lookups are memoized per route number for the life of the client. A failed
// lookup degrades to a blank route name and never fails a poll.
package digitransit
