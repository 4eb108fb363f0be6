package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"themepark/internal/app"
	"themepark/internal/config"
	"themepark/internal/domain/entities"
	"themepark/internal/services"
)

// maxEchoedArgs is how many positional arguments the demo repeats back.
const maxEchoedArgs = 3

func newDemoCmd(opts *options) *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "demo [args...]",
		Short: "Walk through queue, history, sorting, cycles and CSV files",
		Long: `Demo runs a narrated walkthrough against an in-memory park: visitors
queue for a ride, the ride runs cycles, history is sorted, exported to CSV and
imported back into a second ride.

Unless --keep is given, CSV files go to a temporary directory that is removed
afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *opts.cfg
			cfg.Storage.Type = config.StorageTypeMemory

			if !keep {
				dir, err := os.MkdirTemp("", "parkctl-demo-")
				if err != nil {
					return err
				}
				defer os.RemoveAll(dir)
				cfg.History.Dir = dir
			}

			return RunDemo(cmd.Context(), &cfg, cmd.OutOrStdout(), opts.output, args)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "Write CSV files to --history-dir and keep them")

	return cmd
}

// RunDemo performs the walkthrough, narrating to w. The rides it creates are
// printed at the end in the given output format.
func RunDemo(ctx context.Context, cfg *config.Config, w io.Writer, format string, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	d := &demo{ctx: ctx, svc: a.RideService, out: NewOutput(format, w), w: w}

	if len(args) > 0 {
		d.section("Arguments")
		for i, arg := range args[:min(len(args), maxEchoedArgs)] {
			fmt.Fprintf(w, "  arg %d: %s\n", i+1, arg)
		}
		if extra := len(args) - maxEchoedArgs; extra > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", extra)
		}
	}

	steps := []func() error{
		d.queue,
		d.history,
		d.sorting,
		d.cycles,
		d.files,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	d.section("Final state")
	rides, err := a.RideService.ListRides(ctx)
	if err != nil {
		return err
	}
	for _, r := range rides {
		d.out.Print(r)
	}
	return nil
}

type demo struct {
	ctx context.Context
	svc *services.RideService
	out *Output
	w   io.Writer

	// populated by the steps, consumed by later ones
	exportRideID string
}

func (d *demo) section(title string) {
	fmt.Fprintf(d.w, "\n=== %s ===\n", title)
}

func (d *demo) queue() error {
	d.section("Waiting queue")

	ride, err := d.svc.CreateRide(d.ctx, services.CreateRideRequest{Name: "Roller Coaster", MaxRider: 2})
	if err != nil {
		return err
	}
	for i := 1; i <= 5; i++ {
		v, err := entities.NewVisitor(fmt.Sprintf("Queue Visitor %d", i), 20+i, fmt.Sprintf("QID%d", i), "Standard", 1)
		if err != nil {
			return err
		}
		if _, err := d.svc.Enqueue(d.ctx, ride.ID(), v); err != nil {
			return err
		}
	}
	if _, err := d.svc.Dequeue(d.ctx, ride.ID()); err != nil {
		return err
	}
	queue, err := d.svc.Queue(d.ctx, ride.ID())
	if err != nil {
		return err
	}
	fmt.Fprintf(d.w, "%d visitor(s) still waiting\n", len(queue))
	return nil
}

func (d *demo) history() error {
	d.section("Ride history")

	ride, err := d.svc.CreateRide(d.ctx, services.CreateRideRequest{Name: "Water Adventure", MaxRider: 4})
	if err != nil {
		return err
	}
	for i := 1; i <= 5; i++ {
		v, err := entities.NewVisitor(fmt.Sprintf("History Visitor %d", i), 25+i, fmt.Sprintf("HID%d", i), "Premium", i)
		if err != nil {
			return err
		}
		if _, err := d.svc.AddToHistory(d.ctx, ride.ID(), v); err != nil {
			return err
		}
	}

	present, _ := entities.NewVisitor("History Visitor 3", 28, "HID3", "Premium", 3)
	absent, _ := entities.NewVisitor("Someone Else", 40, "HID99", "Standard", 1)
	for _, v := range []*entities.Visitor{present, absent} {
		if _, err := d.svc.HistoryContains(d.ctx, ride.ID(), v); err != nil {
			return err
		}
	}
	return nil
}

func (d *demo) sorting() error {
	d.section("Sorting history")

	ride, err := d.svc.CreateRide(d.ctx, services.CreateRideRequest{Name: "Ferris Wheel", MaxRider: 6})
	if err != nil {
		return err
	}
	seeds := []struct {
		name  string
		age   int
		level string
	}{
		{"Charlie", 30, "Gold"},
		{"alice", 25, "Silver"},
		{"Bob", 35, "Gold"},
		{"Alice", 25, "Bronze"},
		{"bob", 22, "Standard"},
	}
	for i, s := range seeds {
		v, err := entities.NewVisitor(s.name, s.age, fmt.Sprintf("SID%d", i), s.level, i+1)
		if err != nil {
			return err
		}
		if _, err := d.svc.AddToHistory(d.ctx, ride.ID(), v); err != nil {
			return err
		}
	}

	sorted, err := d.svc.SortHistory(d.ctx, ride.ID())
	if err != nil {
		return err
	}
	for i, v := range sorted {
		fmt.Fprintf(d.w, "  %d. %s\n", i+1, describeVisitor(v))
	}
	return nil
}

func (d *demo) cycles() error {
	d.section("Running cycles")

	operator, err := d.svc.RegisterEmployee(d.ctx, services.RegisterEmployeeRequest{
		Name:       "John Ride Operator",
		Age:        32,
		Position:   "Senior Operator",
		EmployeeID: "OP001",
	})
	if err != nil {
		return err
	}

	ride, err := d.svc.CreateRide(d.ctx, services.CreateRideRequest{Name: "Thunderstorm", MaxRider: 3})
	if err != nil {
		return err
	}
	for i := 1; i <= 10; i++ {
		v, err := entities.NewVisitor(fmt.Sprintf("Cycle Visitor %d", i), 18+i, fmt.Sprintf("CID%d", i), "Standard", 2)
		if err != nil {
			return err
		}
		if _, err := d.svc.Enqueue(d.ctx, ride.ID(), v); err != nil {
			return err
		}
	}

	// Refused: nobody is operating the ride yet.
	if _, err := d.svc.RunCycle(d.ctx, ride.ID()); err != nil {
		fmt.Fprintf(d.w, "expected failure: %v\n", err)
	}

	if _, err := d.svc.AssignOperator(d.ctx, ride.ID(), operator.ID()); err != nil {
		return err
	}
	for {
		result, err := d.svc.RunCycle(d.ctx, ride.ID())
		if err != nil {
			fmt.Fprintf(d.w, "stopped: %v\n", err)
			break
		}
		d.out.Print(result)
	}
	d.exportRideID = ride.ID()
	return nil
}

func (d *demo) files() error {
	d.section("Export and import")

	const file = "thunderstorm_history.csv"
	exported, err := d.svc.ExportHistory(d.ctx, d.exportRideID, file)
	if err != nil {
		return err
	}
	d.out.Print(exported)

	replay, err := d.svc.CreateRide(d.ctx, services.CreateRideRequest{Name: "Import Demo Ride", MaxRider: 4})
	if err != nil {
		return err
	}
	report, err := d.svc.ImportHistory(d.ctx, replay.ID(), file)
	if err != nil {
		return err
	}
	d.out.Print(report)

	if _, err := d.svc.ImportHistory(d.ctx, replay.ID(), "missing.csv"); err != nil {
		fmt.Fprintf(d.w, "expected failure: %v\n", err)
	}
	return nil
}
