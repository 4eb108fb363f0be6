package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"themepark/internal/domain/entities"
	"themepark/internal/repository"
)

type StoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.store = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StoreSuite) employee(id string) *entities.Employee {
	e, err := entities.NewEmployee("Jordan", 30, id, "Operator", "E-"+id)
	s.Require().NoError(err)
	return e
}

func (s *StoreSuite) visitor(id, name string) *entities.Visitor {
	v, err := entities.NewVisitor(name, 20, id, "Gold", 3)
	s.Require().NoError(err)
	return v
}

// Ride tests

func (s *StoreSuite) TestCreateAndGetRide() {
	ride := entities.NewRide("ride-1", "Thunder Loop", s.employee("emp-1"), 3,
		entities.WithQueue(s.visitor("v1", "Alice"), s.visitor("v2", "Bob")),
		entities.WithHistory(s.visitor("v3", "Cara")),
	)

	s.Require().NoError(s.store.Rides().Create(s.ctx, ride))

	got, err := s.store.Rides().GetByID(s.ctx, "ride-1")
	s.Require().NoError(err)
	s.Equal("Thunder Loop", got.Name())
	s.Equal(3, got.MaxRider())
	s.Require().True(got.HasOperator())
	s.Equal("emp-1", got.Operator().ID())
	s.Equal(2, got.QueueSize())
	s.Equal("Alice", got.Queue()[0].Name())
	s.True(got.ContainsInHistory(s.visitor("v3", "Cara")))
}

func (s *StoreSuite) TestStoredRideIsSnapshot() {
	ride := entities.NewRide("ride-1", "Thunder Loop", nil, 2)
	s.Require().NoError(s.store.Rides().Create(s.ctx, ride))

	s.Require().NoError(ride.Enqueue(s.visitor("v1", "Alice")))

	got, err := s.store.Rides().GetByID(s.ctx, "ride-1")
	s.Require().NoError(err)
	s.Equal(0, got.QueueSize())
}

func (s *StoreSuite) TestGetRideNotFound() {
	_, err := s.store.Rides().GetByID(s.ctx, "nonexistent")
	s.ErrorIs(err, repository.ErrRideNotFound)
}

func (s *StoreSuite) TestUpdateRide() {
	ride := entities.NewRide("ride-1", "Thunder Loop", s.employee("emp-1"), 1,
		entities.WithQueue(s.visitor("v1", "Alice"), s.visitor("v2", "Bob")),
	)
	s.Require().NoError(s.store.Rides().Create(s.ctx, ride))

	_, err := ride.RunOneCycle()
	s.Require().NoError(err)
	s.Require().NoError(s.store.Rides().Update(s.ctx, ride))

	got, err := s.store.Rides().GetByID(s.ctx, "ride-1")
	s.Require().NoError(err)
	s.Equal(1, got.CycleCount())
	s.Equal(1, got.QueueSize())
	s.Equal(1, got.HistorySize())
}

func (s *StoreSuite) TestUpdateRideNotFound() {
	ride := entities.NewRide("ghost", "Ghost Train", nil, 2)
	err := s.store.Rides().Update(s.ctx, ride)
	s.ErrorIs(err, repository.ErrRideNotFound)
	s.False(s.mini.Exists(rideKey("ghost")))
}

func (s *StoreSuite) TestDeleteRide() {
	ride := entities.NewRide("ride-1", "Thunder Loop", nil, 2)
	s.Require().NoError(s.store.Rides().Create(s.ctx, ride))

	s.Require().NoError(s.store.Rides().Delete(s.ctx, "ride-1"))

	_, err := s.store.Rides().GetByID(s.ctx, "ride-1")
	s.ErrorIs(err, repository.ErrRideNotFound)

	members, err := s.mini.Members(ridesIndexKey())
	if err == nil {
		s.NotContains(members, "ride-1")
	}

	s.ErrorIs(s.store.Rides().Delete(s.ctx, "ride-1"), repository.ErrRideNotFound)
}

func (s *StoreSuite) TestListRides() {
	for _, r := range []*entities.Ride{
		entities.NewRide("r3", "Wave Pool", nil, 2),
		entities.NewRide("r1", "Carousel", nil, 2),
		entities.NewRide("r2", "Carousel", nil, 2),
	} {
		s.Require().NoError(s.store.Rides().Create(s.ctx, r))
	}

	rides, err := s.store.Rides().List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rides, 3)
	s.Equal("r1", rides[0].ID())
	s.Equal("r2", rides[1].ID())
	s.Equal("r3", rides[2].ID())
}

func (s *StoreSuite) TestListRidesEmpty() {
	rides, err := s.store.Rides().List(s.ctx)
	s.Require().NoError(err)
	s.Empty(rides)
}

// Employee tests

func (s *StoreSuite) TestCreateAndGetEmployee() {
	s.Require().NoError(s.store.Employees().Create(s.ctx, s.employee("emp-1")))

	got, err := s.store.Employees().GetByID(s.ctx, "emp-1")
	s.Require().NoError(err)
	s.Equal("Jordan", got.Name())
	s.Equal("Operator", got.Position())
	s.Equal("E-emp-1", got.EmployeeID())
}

func (s *StoreSuite) TestEmployeeLifecycle() {
	emp := s.employee("emp-1")
	s.Require().NoError(s.store.Employees().Create(s.ctx, emp))

	emp.SetPosition("Supervisor")
	s.Require().NoError(s.store.Employees().Update(s.ctx, emp))

	got, err := s.store.Employees().GetByID(s.ctx, "emp-1")
	s.Require().NoError(err)
	s.Equal("Supervisor", got.Position())

	s.Require().NoError(s.store.Employees().Delete(s.ctx, "emp-1"))
	_, err = s.store.Employees().GetByID(s.ctx, "emp-1")
	s.ErrorIs(err, repository.ErrEmployeeNotFound)
}

func (s *StoreSuite) TestListEmployees() {
	s.Require().NoError(s.store.Employees().Create(s.ctx, s.employee("emp-2")))
	s.Require().NoError(s.store.Employees().Create(s.ctx, s.employee("emp-1")))

	employees, err := s.store.Employees().List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(employees, 2)
	s.Equal("emp-1", employees[0].ID())
	s.Equal("emp-2", employees[1].ID())
}

func (s *StoreSuite) TestCorruptSnapshot() {
	s.Require().NoError(s.mini.Set(employeeKey("bad"), `{"name":"X","age":500,"id":"bad"}`))

	_, err := s.store.Employees().GetByID(s.ctx, "bad")
	s.Error(err)
}
