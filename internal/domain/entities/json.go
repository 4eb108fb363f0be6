package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// The JSON forms below are what the API returns and what repositories store.
// Decoding always goes through the same validation as the constructors, so a
// stored snapshot can never produce an entity that breaks its invariants.

type employeeJSON struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	ID         string `json:"id"`
	Position   string `json:"position"`
	EmployeeID string `json:"employee_id"`
}

func (e *Employee) MarshalJSON() ([]byte, error) {
	return json.Marshal(employeeJSON{
		Name:       e.name,
		Age:        e.age,
		ID:         e.id,
		Position:   e.position,
		EmployeeID: e.employeeID,
	})
}

func (e *Employee) UnmarshalJSON(data []byte) error {
	var raw employeeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := NewEmployee(raw.Name, raw.Age, raw.ID, raw.Position, raw.EmployeeID)
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}

type visitorJSON struct {
	Name            string `json:"name"`
	Age             int    `json:"age"`
	ID              string `json:"id"`
	MembershipLevel string `json:"membership_level"`
	Tickets         *int   `json:"tickets,omitempty"`
}

func (v *Visitor) MarshalJSON() ([]byte, error) {
	tickets := v.tickets
	return json.Marshal(visitorJSON{
		Name:            v.name,
		Age:             v.age,
		ID:              v.id,
		MembershipLevel: v.membershipLevel,
		Tickets:         &tickets,
	})
}

// UnmarshalJSON decodes a visitor. A missing tickets field means
// DefaultTickets and a missing membership level means DefaultMembershipLevel.
func (v *Visitor) UnmarshalJSON(data []byte) error {
	var raw visitorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	tickets := DefaultTickets
	if raw.Tickets != nil {
		tickets = *raw.Tickets
	}
	decoded, err := NewVisitor(raw.Name, raw.Age, raw.ID, raw.MembershipLevel, tickets)
	if err != nil {
		return err
	}
	*v = *decoded
	return nil
}

type rideJSON struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Operator     *Employee  `json:"operator,omitempty"`
	MaxRider     int        `json:"max_rider"`
	CycleCount   int        `json:"cycle_count"`
	WaitingQueue []*Visitor `json:"waiting_queue"`
	History      []*Visitor `json:"history"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (r *Ride) MarshalJSON() ([]byte, error) {
	return json.Marshal(rideJSON{
		ID:           r.id,
		Name:         r.name,
		Operator:     r.operator,
		MaxRider:     r.maxRider,
		CycleCount:   r.cycleCount,
		WaitingQueue: nonNilSlice(r.waitingQueue),
		History:      nonNilSlice(r.history),
		CreatedAt:    r.createdAt,
		UpdatedAt:    r.updatedAt,
	})
}

// UnmarshalJSON restores a ride snapshot. Name and capacity get the same
// defaults as NewRide; a negative cycle count is rejected.
func (r *Ride) UnmarshalJSON(data []byte) error {
	var raw rideJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.CycleCount < 0 {
		return fmt.Errorf("decode ride %q: negative cycle count %d", raw.ID, raw.CycleCount)
	}
	decoded := NewRide(raw.ID, raw.Name, raw.Operator, raw.MaxRider,
		WithQueue(raw.WaitingQueue...),
		WithHistory(raw.History...),
	)
	decoded.cycleCount = raw.CycleCount
	if !raw.CreatedAt.IsZero() {
		decoded.createdAt = raw.CreatedAt
	}
	if !raw.UpdatedAt.IsZero() {
		decoded.updatedAt = raw.UpdatedAt
	}
	*r = *decoded
	return nil
}

func nonNilSlice(s []*Visitor) []*Visitor {
	if s == nil {
		return []*Visitor{}
	}
	return s
}
