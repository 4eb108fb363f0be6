// Package entities defines the core domain models for the theme-park system.
// These structs represent the business concepts (Employee, Visitor, Ride) and
// live in the innermost layer of the architecture; they have no dependencies
// on storage, HTTP, logging, or the filesystem.
//
// Go Learning Note: Struct Embedding Instead of Inheritance:
// Go has no abstract base classes. Shared fields are factored into a struct
// (Person) that is embedded in each concrete type. The embedded struct's
// methods are "promoted", so visitor.Name() works even though Name is defined
// on Person. Person is never used on its own outside this package's
// constructors; it only exists to be embedded.
package entities

import (
	"fmt"
	"strings"
)

const (
	MinAge = 0
	MaxAge = 120
)

// Person holds the attributes shared by every kind of person in the park.
// Fields are unexported so that every write goes through a validating setter.
type Person struct {
	name string
	age  int
	id   string
}

func newPerson(name string, age int, id string) (Person, error) {
	p := Person{name: name, id: id}
	if err := p.SetAge(age); err != nil {
		return Person{}, err
	}
	return p, nil
}

func (p *Person) Name() string { return p.name }

func (p *Person) SetName(name string) { p.name = name }

func (p *Person) Age() int { return p.age }

// SetAge assigns age if it lies in [MinAge, MaxAge]. Out-of-range values are
// rejected with ErrInvalidAge and the previous age is kept.
func (p *Person) SetAge(age int) error {
	if age < MinAge || age > MaxAge {
		return fmt.Errorf("%w: %d", ErrInvalidAge, age)
	}
	p.age = age
	return nil
}

func (p *Person) ID() string { return p.id }

func (p *Person) SetID(id string) { p.id = id }

func (p *Person) String() string {
	return fmt.Sprintf("Person{name='%s', age=%d, id='%s'}", p.name, p.age, p.id)
}

// Employee is a member of park staff. An Employee assigned to a Ride is that
// ride's operator.
type Employee struct {
	Person
	position   string
	employeeID string
}

// NewEmployee creates an Employee. The only validated field is age.
func NewEmployee(name string, age int, id, position, employeeID string) (*Employee, error) {
	p, err := newPerson(name, age, id)
	if err != nil {
		return nil, err
	}
	return &Employee{
		Person:     p,
		position:   position,
		employeeID: employeeID,
	}, nil
}

func (e *Employee) Position() string { return e.position }

func (e *Employee) SetPosition(position string) { e.position = position }

func (e *Employee) EmployeeID() string { return e.employeeID }

func (e *Employee) SetEmployeeID(employeeID string) { e.employeeID = employeeID }

// Clone returns an independent copy of e. A nil Employee clones to nil.
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

func (e *Employee) String() string {
	return fmt.Sprintf("Employee{name='%s', position='%s', employeeId='%s'}",
		e.name, e.position, e.employeeID)
}

// isBlank reports whether s is empty after trimming whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
