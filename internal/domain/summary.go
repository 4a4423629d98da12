package domain

// CategoryTotals holds the per-category hour sums for one entity.
type CategoryTotals struct {
	Direct    float64
	PTO       float64
	LWOP      float64
	Indirect  float64
	Available float64
}

// Add returns the element-wise sum of c and o.
func (c CategoryTotals) Add(o CategoryTotals) CategoryTotals {
	return CategoryTotals{
		Direct:    c.Direct + o.Direct,
		PTO:       c.PTO + o.PTO,
		LWOP:      c.LWOP + o.LWOP,
		Indirect:  c.Indirect + o.Indirect,
		Available: c.Available + o.Available,
	}
}

// TotalHours is direct + PTO/holiday + indirect. Available and LWOP hours
// are not counted.
func (c CategoryTotals) TotalHours() float64 {
	return c.Direct + c.PTO + c.Indirect
}

// PersonSummary is one employee's derived figures for one week.
type PersonSummary struct {
	ID             string
	Name           string
	Email          string
	Studio         string
	Manager        string
	ScheduledHours float64
	CategoryTotals
	TotalHours float64
	RatioB     float64

	// Rows keeps row-level detail for the project rollup.
	Rows []AllocationRow
}

// RollupTotals are the accumulated figures carried by every level above a person.
type RollupTotals struct {
	ScheduledHours float64
	DirectHours    float64
	PTOHours       float64
	LWOPHours      float64
	OverheadHours  float64
	AvailableHours float64
	TotalHours     float64
	RatioB         float64
}

type StudioSummary struct {
	Name    string
	Members map[string]PersonSummary // keyed by person ID
	RollupTotals
}

type ManagerSummary struct {
	Name    string
	Studios map[string]StudioSummary // keyed by studio name
	RollupTotals
}

type CompanySummary struct {
	Managers map[string]ManagerSummary // keyed by manager name
	RollupTotals
}

type TeamMember struct {
	ID      string
	Name    string
	Hours   float64
	Studio  string
	Remarks string
}

// ProjectSummary regroups direct hours by project for project-manager views.
type ProjectSummary struct {
	ProjectNumber string
	ProjectName   string
	PM            string
	Labor         float64
	PctLaborUsed  float64
	TotalHours    float64
	TeamMembers   []TeamMember
}

// Totals lifts a person's figures into the rollup shape.
func (p PersonSummary) Totals() RollupTotals {
	return RollupTotals{
		ScheduledHours: p.ScheduledHours,
		DirectHours:    p.Direct,
		PTOHours:       p.PTO,
		LWOPHours:      p.LWOP,
		OverheadHours:  p.Indirect,
		AvailableHours: p.Available,
		TotalHours:     p.TotalHours,
		RatioB:         p.RatioB,
	}
}

// Add sums every hour field of t and o. RatioB is not carried over; callers
// recompute it from the summed fields.
func (t RollupTotals) Add(o RollupTotals) RollupTotals {
	return RollupTotals{
		ScheduledHours: t.ScheduledHours + o.ScheduledHours,
		DirectHours:    t.DirectHours + o.DirectHours,
		PTOHours:       t.PTOHours + o.PTOHours,
		LWOPHours:      t.LWOPHours + o.LWOPHours,
		OverheadHours:  t.OverheadHours + o.OverheadHours,
		AvailableHours: t.AvailableHours + o.AvailableHours,
		TotalHours:     t.TotalHours + o.TotalHours,
	}
}
