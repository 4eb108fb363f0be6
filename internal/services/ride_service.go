package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"themepark/internal/config"
	"themepark/internal/domain/entities"
	"themepark/internal/history"
	"themepark/internal/repository"
	"themepark/pkg/utils"
)

var (
	ErrRideNotFound     = errors.New("ride not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidPath      = errors.New("invalid file path")
)

// RideService is the single entry point for ride and employee operations.
// Every ride operation runs under one mutex: the ride is loaded, mutated and
// written back before the next call may touch it.
type RideService struct {
	mu        sync.Mutex
	rides     repository.RideRepository
	employees repository.EmployeeRepository
	config    *config.Config
	narrator  *Narrator
}

func NewRideService(
	rides repository.RideRepository,
	employees repository.EmployeeRepository,
	cfg *config.Config,
	narrator *Narrator,
) *RideService {
	if narrator == nil {
		narrator = NewNarrator(nil)
	}
	return &RideService{
		rides:     rides,
		employees: employees,
		config:    cfg,
		narrator:  narrator,
	}
}

type CreateRideRequest struct {
	Name       string `json:"name"`
	MaxRider   int    `json:"max_rider"`
	OperatorID string `json:"operator_id"`
}

// CreateRide registers a new ride. A blank name and a MaxRider below 1 take
// the configured defaults.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*entities.Ride, error) {
	name := req.Name
	if strings.TrimSpace(name) == "" {
		name = s.config.Ride.DefaultName
	}
	maxRider := req.MaxRider
	if maxRider < 1 {
		maxRider = s.config.Ride.DefaultMaxRider
	}

	var operator *entities.Employee
	if req.OperatorID != "" {
		e, err := s.getEmployee(ctx, req.OperatorID)
		if err != nil {
			return nil, err
		}
		operator = e
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride := entities.NewRide(utils.NewRideID(), name, operator, maxRider)
	if err := s.rides.Create(ctx, ride); err != nil {
		return nil, err
	}
	s.narrator.RideCreated(ride)
	return ride, nil
}

func (s *RideService) GetRide(ctx context.Context, rideID string) (*entities.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, rideID)
}

func (s *RideService) ListRides(ctx context.Context) ([]*entities.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rides.List(ctx)
}

// UpdateRideRequest carries the optional fields of a ride update. Nil fields
// are left alone.
type UpdateRideRequest struct {
	Name     *string `json:"name"`
	MaxRider *int    `json:"max_rider"`
}

// UpdateRide renames the ride and/or changes its capacity. The update is all
// or nothing: if either value is rejected, neither is stored.
func (s *RideService) UpdateRide(ctx context.Context, rideID string, req UpdateRideRequest) (*entities.Ride, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, entities.ErrBlankName
	}
	if req.MaxRider != nil && *req.MaxRider < 1 {
		return nil, fmt.Errorf("%w: %d", entities.ErrInvalidMaxRider, *req.MaxRider)
	}
	return s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		if req.Name != nil {
			if err := ride.SetName(*req.Name); err != nil {
				return err
			}
		}
		if req.MaxRider != nil {
			if err := ride.SetMaxRider(*req.MaxRider); err != nil {
				return err
			}
		}
		return nil
	})
}

// AssignOperator makes the employee the ride's operator, replacing any
// previous one.
func (s *RideService) AssignOperator(ctx context.Context, rideID, employeeID string) (*entities.Ride, error) {
	operator, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		ride.SetOperator(operator)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.narrator.OperatorAssigned(ride, operator)
	return ride, nil
}

func (s *RideService) UnassignOperator(ctx context.Context, rideID string) (*entities.Ride, error) {
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		ride.SetOperator(nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.narrator.OperatorUnassigned(ride)
	return ride, nil
}

// Enqueue adds v to the tail of the ride's waiting queue and returns the new
// queue size.
func (s *RideService) Enqueue(ctx context.Context, rideID string, v *entities.Visitor) (int, error) {
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		return ride.Enqueue(v)
	})
	if err != nil {
		return 0, err
	}
	s.narrator.Enqueued(ride, v)
	return ride.QueueSize(), nil
}

// Dequeue removes the visitor at the head of the queue. An empty queue yields
// an *entities.OperationError wrapping entities.ErrQueueEmpty.
func (s *RideService) Dequeue(ctx context.Context, rideID string) (*entities.Visitor, error) {
	var removed *entities.Visitor
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		v, ok := ride.DequeueOne()
		if !ok {
			return &entities.OperationError{
				Op:   "dequeue",
				Ride: ride.Name(),
				Msg:  "no visitors in queue",
				Err:  entities.ErrQueueEmpty,
			}
		}
		removed = v
		return nil
	})
	if err != nil {
		if ride != nil && errors.Is(err, entities.ErrQueueEmpty) {
			s.narrator.QueueEmpty(ride)
		}
		return nil, err
	}
	s.narrator.Dequeued(ride, removed)
	return removed, nil
}

// Queue returns the waiting queue, head first.
func (s *RideService) Queue(ctx context.Context, rideID string) ([]*entities.Visitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.load(ctx, rideID)
	if err != nil {
		return nil, err
	}
	return ride.Queue(), nil
}

// ClearQueue empties the waiting queue and returns how many visitors it held.
func (s *RideService) ClearQueue(ctx context.Context, rideID string) (int, error) {
	var removed int
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		removed = ride.QueueSize()
		ride.ClearQueue()
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.narrator.QueueCleared(ride, removed)
	return removed, nil
}

// AddToHistory appends v to the ride history directly, without a cycle, and
// returns the new history size.
func (s *RideService) AddToHistory(ctx context.Context, rideID string, v *entities.Visitor) (int, error) {
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		return ride.AppendToHistory(v)
	})
	if err != nil {
		return 0, err
	}
	s.narrator.HistoryAppended(ride, v)
	return ride.HistorySize(), nil
}

// HistoryContains reports whether a visitor with the same id and name has
// taken the ride.
func (s *RideService) HistoryContains(ctx context.Context, rideID string, v *entities.Visitor) (bool, error) {
	if v == nil {
		return false, entities.ErrNilVisitor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.load(ctx, rideID)
	if err != nil {
		return false, err
	}
	found := ride.ContainsInHistory(v)
	s.narrator.HistoryChecked(ride, v, found)
	return found, nil
}

// History returns the ride history in its current order.
func (s *RideService) History(ctx context.Context, rideID string) ([]*entities.Visitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.load(ctx, rideID)
	if err != nil {
		return nil, err
	}
	return ride.History(), nil
}

// SortHistory stably sorts the history with entities.CompareVisitors.
func (s *RideService) SortHistory(ctx context.Context, rideID string) ([]*entities.Visitor, error) {
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		return ride.SortHistoryDefault()
	})
	if err != nil {
		if ride != nil {
			s.narrator.Refused(ride, "sort", err)
		}
		return nil, err
	}
	s.narrator.HistorySorted(ride)
	return ride.History(), nil
}

// ClearHistory empties the history and resets the cycle count.
func (s *RideService) ClearHistory(ctx context.Context, rideID string) error {
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		ride.ClearHistory()
		return nil
	})
	if err != nil {
		return err
	}
	s.narrator.HistoryCleared(ride)
	return nil
}

// RunCycle runs one cycle of the ride. See entities.Ride.RunOneCycle.
func (s *RideService) RunCycle(ctx context.Context, rideID string) (entities.CycleResult, error) {
	var result entities.CycleResult
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		r, err := ride.RunOneCycle()
		result = r
		return err
	})
	if err != nil {
		if ride != nil {
			s.narrator.Refused(ride, "cycle", err)
		}
		return entities.CycleResult{}, err
	}
	s.narrator.CycleRun(ride, result)
	return result, nil
}

// ExportResult describes a completed history export.
type ExportResult struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// ExportHistory writes the ride history to name, resolved inside the
// configured history directory.
func (s *RideService) ExportHistory(ctx context.Context, rideID, name string) (ExportResult, error) {
	path, err := s.ResolvePath(name)
	if err != nil {
		return ExportResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.load(ctx, rideID)
	if err != nil {
		return ExportResult{}, err
	}
	count, err := history.Export(ride, path)
	if err != nil {
		s.narrator.Refused(ride, "export", err)
		return ExportResult{}, err
	}
	s.narrator.Exported(ride, path, count)
	return ExportResult{Path: path, Count: count}, nil
}

// ImportHistory appends the visitors in name, resolved inside the configured
// history directory, to the ride history.
func (s *RideService) ImportHistory(ctx context.Context, rideID, name string) (history.Report, error) {
	path, err := s.ResolvePath(name)
	if err != nil {
		return history.Report{}, err
	}

	var report history.Report
	ride, err := s.mutate(ctx, rideID, func(ride *entities.Ride) error {
		r, err := history.Import(ride, path)
		report = r
		return err
	})
	if err != nil {
		if ride != nil {
			s.narrator.Refused(ride, "import", err)
		}
		return history.Report{}, err
	}
	s.narrator.Imported(ride, path, report)
	return report, nil
}

// ResolvePath maps a client-supplied file name onto the history directory.
// Absolute paths and paths that would leave the directory are rejected.
func (s *RideService) ResolvePath(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: file name cannot be empty", ErrInvalidPath)
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q must be relative and stay inside the history directory", ErrInvalidPath, name)
	}
	return filepath.Join(s.config.History.Dir, filepath.Clean(name)), nil
}

// load fetches a ride, translating the repository's not-found error. The
// caller must hold s.mu.
func (s *RideService) load(ctx context.Context, rideID string) (*entities.Ride, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, repository.ErrRideNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRideNotFound, rideID)
		}
		return nil, err
	}
	return ride, nil
}

// mutate runs fn against the stored ride and writes it back. When fn fails
// the ride is returned alongside the error (so callers can narrate it) but
// nothing is stored. A ride that could not be loaded is returned as nil.
func (s *RideService) mutate(ctx context.Context, rideID string, fn func(*entities.Ride) error) (*entities.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.load(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if err := fn(ride); err != nil {
		return ride, err
	}
	if err := s.rides.Update(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}
