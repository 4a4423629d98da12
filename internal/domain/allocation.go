package domain

import "time"

// WeekLayout is the date format used for week keys in storage and on the CLI.
const WeekLayout = "2006-01-02"

// AllocationRow is one person's planned hours against one project for one week.
// An empty ID marks a row that has not been persisted yet.
type AllocationRow struct {
	ID               string
	PersonID         string
	WeekStart        time.Time
	ProjectNumber    string
	ProjectName      string
	MilestoneName    string
	ProjectManager   string
	ContractLabor    float64
	PercentLaborUsed float64
	Hours            float64
	Remarks          string
	// AvailableHours marks the row as unallocated capacity regardless of
	// its project number.
	AvailableHours bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsNew reports whether the row has never been saved.
func (r AllocationRow) IsNew() bool {
	return r.ID == ""
}

// WeekKey returns the row's week in WeekLayout form.
func (r AllocationRow) WeekKey() string {
	return r.WeekStart.Format(WeekLayout)
}

// StartOfWeek truncates t to 00:00 UTC on the Monday of its week.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseWeek parses a YYYY-MM-DD date and normalizes it to its Monday.
func ParseWeek(s string) (time.Time, error) {
	t, err := time.Parse(WeekLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfWeek(t), nil
}
