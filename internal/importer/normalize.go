package importer

import (
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// NormalizeAllocation maps an aliased import record onto the canonical row.
// It never fails: missing strings become "", missing or malformed numbers
// become 0. PersonID and WeekStart are resolved by the caller.
func NormalizeAllocation(a AllocationImport) domain.AllocationRow {
	return domain.AllocationRow{
		ID:               strings.TrimSpace(a.ID),
		PersonID:         strings.TrimSpace(a.PersonID),
		ProjectNumber:    domain.CoalesceStr(a.ProjID, a.ProjectNumber),
		ProjectName:      domain.CoalesceStr(a.ProjName, a.ProjectName),
		MilestoneName:    a.MilestoneName,
		ProjectManager:   domain.CoalesceStr(a.PM, a.ProjectMgr),
		ContractLabor:    firstSet(a.ContractLabor, a.Labor).Float(),
		PercentLaborUsed: firstSet(a.PctLaborUsed, a.PercentLaborUsed).Float(),
		Hours:            firstSet(a.RaHours, a.Hours).Float(),
		Remarks:          domain.CoalesceStr(a.RaRemarks, a.Remarks),
		AvailableHours:   bool(a.AvailableHours),
	}
}

// NormalizePerson maps an import record onto a Person, applying the
// scheduled-hours and label defaults.
func NormalizePerson(p PersonImport) domain.Person {
	scheduled := domain.DefaultScheduledHours
	if p.ScheduledHours.IsSet() {
		scheduled = domain.ScheduledHoursOrDefault(p.ScheduledHours.Float())
	}
	return domain.Person{
		ID:             strings.TrimSpace(p.ID),
		Name:           strings.TrimSpace(p.Name),
		Email:          strings.ToLower(strings.TrimSpace(p.Email)),
		Studio:         domain.LabelOrUnassigned(domain.CoalesceStr(p.Studio, p.StudioLeader, p.GroupName)),
		Manager:        domain.LabelOrUnassigned(domain.CoalesceStr(p.Manager, p.GroupManager)),
		ScheduledHours: scheduled,
	}
}

// firstSet returns the first alias holding a usable number, so a blank
// "ra_hours" does not hide a valid "hours".
func firstSet(vals ...FlexNumber) FlexNumber {
	for _, v := range vals {
		if v.Valid() {
			return v
		}
	}
	return FlexNumber{}
}
