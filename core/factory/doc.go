// Package factory is a small generic registry that builds modules from
// configuration. A module is described by a type name and a map of raw
// settings; the registered factory decodes the settings into its own typed
// struct and returns the implementation.
//
// It backs the metrics sink list of the service configuration:
//
//	sinks:
//	  - type: prometheus
//	  - type: influx
//	    conf:
//	      url: http://influx:8086
//	      bucket: sizing
//
// Factories decode their settings with Decode, which honours json tags and
// accepts the string values produced by environment overrides ("5" for 5).
package factory
