package services

import (
	"io"
	"log/slog"

	"themepark/internal/domain/entities"
	"themepark/internal/history"
)

// Narrator reports what happened to a ride in human-readable form. The
// entities themselves never log; every outcome a visitor or operator would
// want to hear about goes through here.
type Narrator struct {
	logger *slog.Logger
}

// NewNarrator wraps logger. A nil logger falls back to slog.Default().
func NewNarrator(logger *slog.Logger) *Narrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Narrator{logger: logger}
}

// DiscardNarrator returns a Narrator that drops everything (for tests).
func DiscardNarrator() *Narrator {
	return NewNarrator(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func rideAttrs(ride *entities.Ride) slog.Attr {
	return slog.Group("ride",
		slog.String("id", ride.ID()),
		slog.String("name", ride.Name()),
	)
}

func (n *Narrator) RideCreated(ride *entities.Ride) {
	n.logger.Info("ride created", rideAttrs(ride), slog.Int("max_rider", ride.MaxRider()))
}

func (n *Narrator) OperatorAssigned(ride *entities.Ride, operator *entities.Employee) {
	n.logger.Info("operator assigned", rideAttrs(ride),
		slog.String("operator_id", operator.ID()),
		slog.String("operator", operator.Name()),
	)
}

func (n *Narrator) OperatorUnassigned(ride *entities.Ride) {
	n.logger.Info("operator unassigned", rideAttrs(ride))
}

func (n *Narrator) EmployeeRegistered(employee *entities.Employee) {
	n.logger.Info("employee registered",
		slog.String("id", employee.ID()),
		slog.String("name", employee.Name()),
		slog.String("position", employee.Position()),
	)
}

func (n *Narrator) Enqueued(ride *entities.Ride, v *entities.Visitor) {
	n.logger.Info("visitor joined the queue", rideAttrs(ride),
		slog.String("visitor", v.Name()),
		slog.Int("queue_size", ride.QueueSize()),
	)
}

func (n *Narrator) Dequeued(ride *entities.Ride, v *entities.Visitor) {
	n.logger.Info("visitor left the queue", rideAttrs(ride),
		slog.String("visitor", v.Name()),
		slog.Int("queue_size", ride.QueueSize()),
	)
}

func (n *Narrator) QueueEmpty(ride *entities.Ride) {
	n.logger.Warn("queue is empty, nobody to remove", rideAttrs(ride))
}

func (n *Narrator) QueueCleared(ride *entities.Ride, removed int) {
	n.logger.Info("queue cleared", rideAttrs(ride), slog.Int("removed", removed))
}

func (n *Narrator) HistoryAppended(ride *entities.Ride, v *entities.Visitor) {
	n.logger.Info("visitor added to history", rideAttrs(ride),
		slog.String("visitor", v.Name()),
		slog.Int("history_size", ride.HistorySize()),
	)
}

func (n *Narrator) HistoryChecked(ride *entities.Ride, v *entities.Visitor, found bool) {
	if found {
		n.logger.Info("visitor found in history", rideAttrs(ride), slog.String("visitor", v.Name()))
		return
	}
	n.logger.Info("visitor not in history", rideAttrs(ride), slog.String("visitor", v.Name()))
}

func (n *Narrator) HistorySorted(ride *entities.Ride) {
	n.logger.Info("history sorted", rideAttrs(ride), slog.Int("history_size", ride.HistorySize()))
}

func (n *Narrator) HistoryCleared(ride *entities.Ride) {
	n.logger.Info("history cleared", rideAttrs(ride))
}

func (n *Narrator) CycleRun(ride *entities.Ride, result entities.CycleResult) {
	names := make([]string, len(result.Riders))
	for i, v := range result.Riders {
		names[i] = v.Name()
	}
	n.logger.Info("ride cycle complete", rideAttrs(ride),
		slog.Int("cycle", result.Cycle),
		slog.Any("riders", names),
		slog.Int("remaining", result.Remaining),
	)
}

// Refused reports an operation the ride could not perform.
func (n *Narrator) Refused(ride *entities.Ride, op string, err error) {
	n.logger.Warn(op+" refused", rideAttrs(ride), slog.String("error", err.Error()))
}

func (n *Narrator) Exported(ride *entities.Ride, path string, count int) {
	n.logger.Info("history exported", rideAttrs(ride),
		slog.String("path", path),
		slog.Int("count", count),
	)
}

func (n *Narrator) Imported(ride *entities.Ride, path string, report history.Report) {
	for _, w := range report.Warnings {
		n.logger.Warn("skipped malformed line",
			slog.String("path", path),
			slog.Int("line", w.Line),
			slog.String("text", w.Text),
			slog.String("error", w.Err.Error()),
		)
	}
	n.logger.Info("history imported", rideAttrs(ride),
		slog.String("path", path),
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
	)
}
