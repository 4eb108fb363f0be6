package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerson_SetAgeBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		age     int
		wantErr bool
		wantAge int
	}{
		{name: "lower_bound_accepted", age: 0, wantAge: 0},
		{name: "upper_bound_accepted", age: 120, wantAge: 120},
		{name: "negative_rejected", age: -5, wantErr: true, wantAge: 30},
		{name: "just_above_upper_rejected", age: 121, wantErr: true, wantAge: 30},
		{name: "far_above_upper_rejected", age: 150, wantErr: true, wantAge: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVisitor("Alice", 30, "V1", "Gold", 2)
			require.NoError(t, err)

			err = v.SetAge(tt.age)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAge)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantAge, v.Age())
		})
	}
}

func TestNewVisitor_Defaults(t *testing.T) {
	v, err := NewVisitor("Bob", 22, "V2", "", 1)
	require.NoError(t, err)

	assert.Equal(t, DefaultMembershipLevel, v.MembershipLevel())
	assert.Equal(t, DefaultTickets, v.Tickets())
}

func TestNewVisitor_RejectsInvalidValues(t *testing.T) {
	_, err := NewVisitor("Bob", 121, "V2", "Gold", 1)
	assert.ErrorIs(t, err, ErrInvalidAge)

	_, err = NewVisitor("Bob", 22, "V2", "Gold", -1)
	assert.ErrorIs(t, err, ErrInvalidTickets)
}

func TestVisitor_SetTicketsKeepsPriorValueOnRejection(t *testing.T) {
	v, err := NewVisitor("Carol", 40, "V3", "Silver", 5)
	require.NoError(t, err)

	assert.ErrorIs(t, v.SetTickets(-3), ErrInvalidTickets)
	assert.Equal(t, 5, v.Tickets())

	require.NoError(t, v.SetTickets(0))
	assert.Equal(t, 0, v.Tickets())
}

func TestVisitor_BlankMembershipLevel(t *testing.T) {
	v, err := NewVisitor("Erin", 27, "V6", "   ", 1)
	require.NoError(t, err)
	assert.Equal(t, DefaultMembershipLevel, v.MembershipLevel())

	require.NoError(t, v.SetMembershipLevel("Gold"))
	assert.ErrorIs(t, v.SetMembershipLevel(""), ErrBlankMembership)
	assert.ErrorIs(t, v.SetMembershipLevel(" \t"), ErrBlankMembership)
	assert.Equal(t, "Gold", v.MembershipLevel())
}

func TestVisitor_Clone(t *testing.T) {
	v, err := NewVisitor("Fay", 33, "V7", "Gold", 2)
	require.NoError(t, err)

	c := v.Clone()
	require.NotSame(t, v, c)
	assert.True(t, v.Equal(c))
	require.NoError(t, c.SetTickets(9))
	assert.Equal(t, 2, v.Tickets())

	var nilVisitor *Visitor
	assert.Nil(t, nilVisitor.Clone())
}

func TestVisitor_Equal(t *testing.T) {
	a, _ := NewVisitor("Dana", 30, "V4", "Gold", 1)
	sameGuest, _ := NewVisitor("Dana", 55, "V4", "Premium", 9)
	otherName, _ := NewVisitor("Dora", 30, "V4", "Gold", 1)
	otherID, _ := NewVisitor("Dana", 30, "V5", "Gold", 1)

	assert.True(t, a.Equal(sameGuest), "id and name match")
	assert.False(t, a.Equal(otherName))
	assert.False(t, a.Equal(otherID))
	assert.False(t, a.Equal(nil))
	assert.Equal(t, a.Key(), otherName.Key(), "key is derived from id only")
}

func TestNewEmployee(t *testing.T) {
	e, err := NewEmployee("John Smith", 30, "EMP001", "Senior Ride Operator", "OP1001")
	require.NoError(t, err)

	assert.Equal(t, "John Smith", e.Name())
	assert.Equal(t, 30, e.Age())
	assert.Equal(t, "EMP001", e.ID())
	assert.Equal(t, "Senior Ride Operator", e.Position())
	assert.Equal(t, "OP1001", e.EmployeeID())

	_, err = NewEmployee("Too Old", 200, "EMP002", "Operator", "OP1002")
	assert.ErrorIs(t, err, ErrInvalidAge)
}
