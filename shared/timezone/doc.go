// Package timezone owns the canonical time policy for the service: every
// interval is stored, compared and formatted in UTC. Booking requests carry a
// wall-clock date and start/end times as separate strings; this package is the
// only place that parses them, so the overlap predicate can never disagree
// with the store about zone handling.
package timezone
