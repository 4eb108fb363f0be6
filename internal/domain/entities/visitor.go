package entities

import "fmt"

const (
	DefaultMembershipLevel = "Standard"
	DefaultTickets         = 1
)

// Visitor is a park guest who queues for and takes rides.
//
// Two visitors are the same guest when both their id and name match (see
// Equal). Key returns the id alone, so equal visitors always share a key.
type Visitor struct {
	Person
	membershipLevel string
	tickets         int
}

// NewVisitor creates a Visitor. A blank membership level falls back to
// DefaultMembershipLevel. Age outside [MinAge, MaxAge] and negative ticket
// counts are rejected.
func NewVisitor(name string, age int, id, membershipLevel string, tickets int) (*Visitor, error) {
	p, err := newPerson(name, age, id)
	if err != nil {
		return nil, err
	}
	v := &Visitor{
		Person:          p,
		membershipLevel: DefaultMembershipLevel,
		tickets:         DefaultTickets,
	}
	if !isBlank(membershipLevel) {
		v.membershipLevel = membershipLevel
	}
	if err := v.SetTickets(tickets); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Visitor) MembershipLevel() string { return v.membershipLevel }

// SetMembershipLevel rejects blank levels with ErrBlankMembership and keeps
// the previous value, so every visitor carries a level that survives a CSV
// round trip.
func (v *Visitor) SetMembershipLevel(level string) error {
	if isBlank(level) {
		return ErrBlankMembership
	}
	v.membershipLevel = level
	return nil
}

func (v *Visitor) Tickets() int { return v.tickets }

// SetTickets rejects negative counts with ErrInvalidTickets and keeps the
// previous value.
func (v *Visitor) SetTickets(tickets int) error {
	if tickets < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTickets, tickets)
	}
	v.tickets = tickets
	return nil
}

// Equal reports whether v and other identify the same guest.
func (v *Visitor) Equal(other *Visitor) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.id == other.id && v.name == other.name
}

// Clone returns an independent copy of v. A nil Visitor clones to nil.
func (v *Visitor) Clone() *Visitor {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Key is the lookup key for a visitor. It is derived from the id only.
func (v *Visitor) Key() string { return v.id }

func (v *Visitor) String() string {
	return fmt.Sprintf("Visitor{name='%s', age=%d, id='%s', membership='%s', tickets=%d}",
		v.name, v.age, v.id, v.membershipLevel, v.tickets)
}
