package domain

import (
	"fmt"
)

type TicketType int

const (
	TicketTypeAdult TicketType = iota
	TicketTypeChild
	TicketTypeInfant

	numTicketTypes
)

var ticketTypeNames = [...]string{
	TicketTypeAdult:  "ADULT",
	TicketTypeChild:  "CHILD",
	TicketTypeInfant: "INFANT",
}

// Unit prices in whole currency units.
var ticketPrices = [...]int{
	TicketTypeAdult:  20,
	TicketTypeChild:  10,
	TicketTypeInfant: 0,
}

// Every ticket type must have a name and a price.
var (
	_ [int(numTicketTypes) - len(ticketPrices)]struct{}
	_ [len(ticketPrices) - int(numTicketTypes)]struct{}
	_ [int(numTicketTypes) - len(ticketTypeNames)]struct{}
	_ [len(ticketTypeNames) - int(numTicketTypes)]struct{}
)

func TicketTypes() []TicketType {
	types := make([]TicketType, 0, numTicketTypes)
	for t := TicketType(0); t < numTicketTypes; t++ {
		types = append(types, t)
	}

	return types
}

func ParseTicketType(s string) (TicketType, error) {
	for t, name := range ticketTypeNames {
		if name == s {
			return TicketType(t), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownTicketType, s)
}

func (t TicketType) Valid() bool {
	return t >= 0 && t < numTicketTypes
}

func (t TicketType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TicketType(%d)", int(t))
	}

	return ticketTypeNames[t]
}

// Price returns the flat unit price of a ticket of this type.
func (t TicketType) Price() int {
	if !t.Valid() {
		return 0
	}

	return ticketPrices[t]
}

// OccupiesSeat reports whether a ticket of this type needs its own seat.
// Infants sit on a guardian's lap.
func (t TicketType) OccupiesSeat() bool {
	return t != TicketTypeInfant
}

func (t TicketType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTicketType, int(t))
	}

	return []byte(ticketTypeNames[t]), nil
}

func (t *TicketType) UnmarshalText(text []byte) error {
	parsed, err := ParseTicketType(string(text))
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// TicketTypeRequest asks for a number of tickets of a single type.
type TicketTypeRequest struct {
	ticketType TicketType
	quantity   int
}

func NewTicketTypeRequest(ticketType TicketType, quantity int) *TicketTypeRequest {
	return &TicketTypeRequest{
		ticketType: ticketType,
		quantity:   quantity,
	}
}

func (r TicketTypeRequest) TicketType() TicketType {
	return r.ticketType
}

func (r TicketTypeRequest) Quantity() int {
	return r.quantity
}
