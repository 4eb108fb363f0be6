package redis

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"themepark/internal/domain/entities"
	"themepark/internal/repository"
)

// json must honour the entities' MarshalJSON and UnmarshalJSON methods.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is a Redis-backed implementation of both repository interfaces.
// Entities are stored as JSON snapshots; every read decodes a fresh copy, so
// a ride fetched twice yields two independent values.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store and verifies the connection
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Rides returns the ride repository view of the store.
func (s *Store) Rides() *RideRepository { return &RideRepository{store: s} }

// Employees returns the employee repository view of the store.
func (s *Store) Employees() *EmployeeRepository { return &EmployeeRepository{store: s} }

// save writes data under key and records id in the index set.
func (s *Store) save(ctx context.Context, key, indexKey, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, indexKey, id)
	_, err = pipe.Exec(ctx)
	return err
}

// replace overwrites an existing key, returning notFound when it is absent.
func (s *Store) replace(ctx context.Context, key string, v any, notFound error) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// XX: only set if the key already exists.
	ok, err := s.client.SetXX(ctx, key, data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return notFound
	}
	return nil
}

func (s *Store) load(ctx context.Context, key string, v any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) remove(ctx context.Context, key, indexKey, id string, notFound error) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, key)
	pipe.SRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return notFound
	}
	return nil
}

// loadAll fetches every member of the index set with a single MGET. Ids whose
// key has disappeared are skipped.
func loadAll[T any](ctx context.Context, s *Store, indexKey string, keyFor func(string) string) ([]*T, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*T{}, nil
	}
	slices.Sort(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyFor(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(values))
	for _, raw := range values {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		item := new(T)
		if err := json.Unmarshal([]byte(str), item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// RideRepository stores ride snapshots under themepark:ride:<id>.
type RideRepository struct {
	store *Store
}

var _ repository.RideRepository = (*RideRepository)(nil)

func (r *RideRepository) Create(ctx context.Context, ride *entities.Ride) error {
	return r.store.save(ctx, rideKey(ride.ID()), ridesIndexKey(), ride.ID(), ride)
}

func (r *RideRepository) GetByID(ctx context.Context, id string) (*entities.Ride, error) {
	var ride entities.Ride
	if err := r.store.load(ctx, rideKey(id), &ride, repository.ErrRideNotFound); err != nil {
		return nil, err
	}
	return &ride, nil
}

func (r *RideRepository) Update(ctx context.Context, ride *entities.Ride) error {
	return r.store.replace(ctx, rideKey(ride.ID()), ride, repository.ErrRideNotFound)
}

func (r *RideRepository) Delete(ctx context.Context, id string) error {
	return r.store.remove(ctx, rideKey(id), ridesIndexKey(), id, repository.ErrRideNotFound)
}

// List returns every stored ride ordered by name, then id.
func (r *RideRepository) List(ctx context.Context) ([]*entities.Ride, error) {
	rides, err := loadAll[entities.Ride](ctx, r.store, ridesIndexKey(), rideKey)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(rides, func(a, b *entities.Ride) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return rides, nil
}

// EmployeeRepository stores employees under themepark:employee:<id>.
type EmployeeRepository struct {
	store *Store
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)

func (r *EmployeeRepository) Create(ctx context.Context, employee *entities.Employee) error {
	return r.store.save(ctx, employeeKey(employee.ID()), employeesIndexKey(), employee.ID(), employee)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*entities.Employee, error) {
	var employee entities.Employee
	if err := r.store.load(ctx, employeeKey(id), &employee, repository.ErrEmployeeNotFound); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *entities.Employee) error {
	return r.store.replace(ctx, employeeKey(employee.ID()), employee, repository.ErrEmployeeNotFound)
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.store.remove(ctx, employeeKey(id), employeesIndexKey(), id, repository.ErrEmployeeNotFound)
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*entities.Employee, error) {
	return loadAll[entities.Employee](ctx, r.store, employeesIndexKey(), employeeKey)
}
