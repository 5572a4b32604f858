package gateway

import (
	"fmt"

	"huddle/shared/failure"
)

// Op names one operation of the booking protocol. The set is closed:
// anything else is rejected before touching a service.
type Op string

const (
	OpInitialize    Op = "initialize"
	OpListRooms     Op = "list_rooms"
	OpFindAvailable Op = "find_available"
	OpBook          Op = "book"
	OpListBookings  Op = "list_bookings"
	OpCancel        Op = "cancel"
	OpClose         Op = "close"
)

var knownOps = map[Op]struct{}{
	OpInitialize:    {},
	OpListRooms:     {},
	OpFindAvailable: {},
	OpBook:          {},
	OpListBookings:  {},
	OpCancel:        {},
	OpClose:         {},
}

// ParseOp validates an operation name from the wire.
func ParseOp(name string) (Op, error) {
	op := Op(name)
	if _, ok := knownOps[op]; !ok {
		return "", failure.BadRequestFromString(fmt.Sprintf("unknown operation %q", name))
	}

	return op, nil
}
