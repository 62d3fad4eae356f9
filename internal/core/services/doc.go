// Package services implements the driving ports of the core.
//
// Services orchestrate pure helpers (diff, markup) over the driven
// ports (page store, notifier). They hold no page state of their own:
// the only shared mutable resource is the canonical content in the
// store, and everything else is computed fresh per call.
package services
