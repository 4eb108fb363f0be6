package cli

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"themepark/internal/domain/entities"
	"themepark/internal/history"
	"themepark/internal/services"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *entities.Ride:
		o.printRide(v)
	case InspectResult:
		o.printInspectResult(v)
	case history.Report:
		o.printReport(v)
	case services.ExportResult:
		fmt.Fprintf(o.w, "Exported %d visitor(s) to %s\n", v.Count, v.Path)
	case entities.CycleResult:
		o.printCycle(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// InspectResult is what `history inspect` prints.
type InspectResult struct {
	File     string              `json:"file"`
	Sorted   bool                `json:"sorted"`
	Report   history.Report      `json:"report"`
	Visitors []*entities.Visitor `json:"visitors"`
}

func (o *Output) printRide(r *entities.Ride) {
	fmt.Fprintf(o.w, "Ride:       %s\n", r.Name())
	fmt.Fprintf(o.w, "ID:         %s\n", r.ID())
	if op := r.Operator(); op != nil {
		fmt.Fprintf(o.w, "Operator:   %s (%s)\n", op.Name(), op.Position())
	} else {
		fmt.Fprintln(o.w, "Operator:   none")
	}
	fmt.Fprintf(o.w, "Max riders: %d\n", r.MaxRider())
	fmt.Fprintf(o.w, "Cycles:     %d\n", r.CycleCount())

	fmt.Fprintf(o.w, "Queue (%d):\n", r.QueueSize())
	for i, v := range r.ListQueue() {
		fmt.Fprintf(o.w, "  %d. %s\n", i, describeVisitor(v))
	}
	fmt.Fprintf(o.w, "History (%d):\n", r.HistorySize())
	for i, v := range r.ListHistory() {
		fmt.Fprintf(o.w, "  %d. %s\n", i, describeVisitor(v))
	}
}

func (o *Output) printInspectResult(r InspectResult) {
	fmt.Fprintf(o.w, "File: %s\n", r.File)
	o.printReport(r.Report)
	if r.Sorted {
		fmt.Fprintln(o.w, "Visitors (sorted):")
	} else {
		fmt.Fprintln(o.w, "Visitors:")
	}
	for i, v := range r.Visitors {
		fmt.Fprintf(o.w, "  %d. %s\n", i+1, describeVisitor(v))
	}
}

func (o *Output) printReport(r history.Report) {
	fmt.Fprintf(o.w, "Imported: %d\n", r.Imported)
	fmt.Fprintf(o.w, "Skipped:  %d\n", r.Skipped)
	for _, w := range r.Warnings {
		fmt.Fprintf(o.w, "  warning: %s\n", w)
	}
}

func (o *Output) printCycle(c entities.CycleResult) {
	names := make([]string, len(c.Riders))
	for i, v := range c.Riders {
		names[i] = v.Name()
	}
	fmt.Fprintf(o.w, "Cycle %d: %s (%d still waiting)\n", c.Cycle, strings.Join(names, ", "), c.Remaining)
}

func describeVisitor(v *entities.Visitor) string {
	return fmt.Sprintf("%s, age %d, id %s, %s, %d ticket(s)",
		v.Name(), v.Age(), v.ID(), v.MembershipLevel(), v.Tickets())
}
