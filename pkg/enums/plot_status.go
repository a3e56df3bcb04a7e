package enums

import "fmt"

// PlotStatus tracks the sale state of an inventory plot. "selected" exists for
// the browser grid while a purchase is in flight; the stores only ever persist
// available/sold.
type PlotStatus string

const (
	PlotStatusAvailable PlotStatus = "available"
	PlotStatusSelected  PlotStatus = "selected"
	PlotStatusSold      PlotStatus = "sold"
)

var validPlotStatuses = []PlotStatus{
	PlotStatusAvailable,
	PlotStatusSelected,
	PlotStatusSold,
}

// String implements fmt.Stringer.
func (p PlotStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PlotStatus.
func (p PlotStatus) IsValid() bool {
	for _, candidate := range validPlotStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlotStatus converts raw input into a PlotStatus.
func ParsePlotStatus(value string) (PlotStatus, error) {
	for _, candidate := range validPlotStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plot status %q", value)
}
