package domain

const (
	// DefaultScheduledHours is the weekly baseline used when a person has
	// no valid configured value.
	DefaultScheduledHours = 40.0

	// UnassignedLabel stands in for a missing studio or manager.
	UnassignedLabel = "Unassigned"
)

type Person struct {
	ID             string
	Name           string
	Email          string
	Studio         string
	Manager        string
	ScheduledHours float64
}

// EffectiveScheduledHours returns the configured baseline, or
// DefaultScheduledHours when it is unset or not a positive number.
func (p Person) EffectiveScheduledHours() float64 {
	return ScheduledHoursOrDefault(p.ScheduledHours)
}

// StudioLabel returns the studio name, or UnassignedLabel when blank.
func (p Person) StudioLabel() string {
	return LabelOrUnassigned(p.Studio)
}

// ManagerLabel returns the group manager name, or UnassignedLabel when blank.
func (p Person) ManagerLabel() string {
	return LabelOrUnassigned(p.Manager)
}
