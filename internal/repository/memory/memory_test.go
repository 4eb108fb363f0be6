package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themepark/internal/domain/entities"
	"themepark/internal/repository"
)

func TestRideRepository_CRUD(t *testing.T) {
	repo := NewRideRepository()
	ctx := context.Background()

	ride := entities.NewRide("ride-1", "Carousel", nil, 2)
	require.NoError(t, repo.Create(ctx, ride))

	got, err := repo.GetByID(ctx, "ride-1")
	require.NoError(t, err)
	assert.NotSame(t, ride, got)
	assert.Equal(t, "Carousel", got.Name())

	require.NoError(t, ride.SetName("Grand Carousel"))
	require.NoError(t, repo.Update(ctx, ride))

	got, _ = repo.GetByID(ctx, "ride-1")
	assert.Equal(t, "Grand Carousel", got.Name())

	require.NoError(t, repo.Delete(ctx, "ride-1"))
	_, err = repo.GetByID(ctx, "ride-1")
	assert.ErrorIs(t, err, repository.ErrRideNotFound)
}

func TestRideRepository_ReturnsIndependentCopies(t *testing.T) {
	repo := NewRideRepository()
	ctx := context.Background()

	operator, err := entities.NewEmployee("Kim", 28, "emp-1", "Operator", "OP1")
	require.NoError(t, err)
	guest, err := entities.NewVisitor("Ann", 30, "V1", "Gold", 1)
	require.NoError(t, err)

	ride := entities.NewRide("ride-1", "Carousel", operator, 2, entities.WithQueue(guest))
	require.NoError(t, repo.Create(ctx, ride))

	// Changes to the caller's value are invisible until Update.
	require.NoError(t, ride.Enqueue(guest))
	require.NoError(t, guest.SetMembershipLevel("Platinum"))
	operator.SetPosition("Manager")

	first, err := repo.GetByID(ctx, "ride-1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.QueueSize())
	assert.Equal(t, "Gold", first.Queue()[0].MembershipLevel())
	assert.Equal(t, "Operator", first.Operator().Position())

	// Two reads never share state.
	_, ok := first.DequeueOne()
	require.True(t, ok)
	second, err := repo.GetByID(ctx, "ride-1")
	require.NoError(t, err)
	assert.Equal(t, 1, second.QueueSize())

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.NotSame(t, second, listed[0])
}

func TestRideRepository_NotFound(t *testing.T) {
	repo := NewRideRepository()
	ctx := context.Background()

	assert.ErrorIs(t, repo.Update(ctx, entities.NewRide("ghost", "Ghost Train", nil, 2)), repository.ErrRideNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "ghost"), repository.ErrRideNotFound)
}

func TestRideRepository_ListOrder(t *testing.T) {
	repo := NewRideRepository()
	ctx := context.Background()

	for _, r := range []*entities.Ride{
		entities.NewRide("r3", "Wave Pool", nil, 2),
		entities.NewRide("r2", "Carousel", nil, 2),
		entities.NewRide("r1", "Carousel", nil, 2),
	} {
		require.NoError(t, repo.Create(ctx, r))
	}

	rides, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make([]string, len(rides))
	for i, r := range rides {
		ids[i] = r.ID()
	}
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids)
}

func TestEmployeeRepository_CRUD(t *testing.T) {
	repo := NewEmployeeRepository()
	ctx := context.Background()

	emp, err := entities.NewEmployee("Sam", 40, "emp-2", "Operator", "OP2")
	require.NoError(t, err)
	other, err := entities.NewEmployee("Kim", 28, "emp-1", "Operator", "OP1")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, emp))
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.GetByID(ctx, "emp-2")
	require.NoError(t, err)
	assert.NotSame(t, emp, got)
	got.SetPosition("Manager")
	again, err := repo.GetByID(ctx, "emp-2")
	require.NoError(t, err)
	assert.Equal(t, "Operator", again.Position())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "emp-1", list[0].ID())

	require.NoError(t, repo.Delete(ctx, "emp-2"))
	_, err = repo.GetByID(ctx, "emp-2")
	assert.ErrorIs(t, err, repository.ErrEmployeeNotFound)
	assert.ErrorIs(t, repo.Update(ctx, emp), repository.ErrEmployeeNotFound)
}

func TestRideRepository_ConcurrentAccess(t *testing.T) {
	repo := NewRideRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := string(rune('a' + i%26))
			_ = repo.Create(ctx, entities.NewRide(id, "Ride", nil, 2))
			_, _ = repo.GetByID(ctx, id)
			_, _ = repo.List(ctx)
		}()
	}
	wg.Wait()

	rides, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rides, 26)
}
