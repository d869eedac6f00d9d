// Package feed handles fetching and normalizing vehicle position feeds.
//
// It supports two wire formats:
//   - HFP: a polled JSON array of high-frequency positioning payloads
//   - GTFS-RT: a polled GTFS-Realtime VehiclePositions protobuf feed
//
// Both sources produce the same VehiclePosition snapshot type, so the rest
// of the bot never cares which feed it is watching.
package feed
