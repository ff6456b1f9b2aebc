// Package events defines the events published on the internal bus.
//
// Available event types:
//   - SizingCompleted: a request was resolved
//   - RequestRejected: a request could not be decoded or was invalid
//   - ReferenceLoaded: the reference workbook was (re)loaded
package events
