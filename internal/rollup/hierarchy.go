package rollup

import (
	"sort"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// Summarize builds a person's weekly summary from their rows. The rows are
// copied so later edits to the caller's slice do not leak into the summary.
func Summarize(p domain.Person, rows []domain.AllocationRow, mode domain.LWOPMode) domain.PersonSummary {
	totals := Aggregate(rows)
	scheduled := p.EffectiveScheduledHours()

	kept := make([]domain.AllocationRow, len(rows))
	copy(kept, rows)

	return domain.PersonSummary{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Studio:         p.StudioLabel(),
		Manager:        p.ManagerLabel(),
		ScheduledHours: scheduled,
		CategoryTotals: totals,
		TotalHours:     totals.TotalHours(),
		RatioB:         RatioBFor(mode, totals.Direct, scheduled, totals.PTO, totals.LWOP),
		Rows:           kept,
	}
}

// RollUpStudios groups members by studio and accumulates each studio's
// totals. Members sharing an ID (the same person over several weeks) are
// merged into a single entry.
func RollUpStudios(members []domain.PersonSummary, mode domain.LWOPMode) map[string]domain.StudioSummary {
	grouped := make(map[string]map[string]domain.PersonSummary)
	for _, m := range members {
		studio := domain.LabelOrUnassigned(m.Studio)
		byID, ok := grouped[studio]
		if !ok {
			byID = make(map[string]domain.PersonSummary)
			grouped[studio] = byID
		}
		key := memberKey(m)
		if prev, ok := byID[key]; ok {
			byID[key] = mergeMember(prev, m, mode)
			continue
		}
		byID[key] = cloneMember(m)
	}

	studios := make(map[string]domain.StudioSummary, len(grouped))
	for name, byID := range grouped {
		var totals domain.RollupTotals
		for _, key := range sortedKeys(byID) {
			totals = totals.Add(byID[key].Totals())
		}
		studios[name] = domain.StudioSummary{
			Name:         name,
			Members:      byID,
			RollupTotals: withRatio(totals, mode),
		}
	}
	return studios
}

// RollUpManager rolls the given members into studios and then into one
// group-manager summary.
func RollUpManager(name string, members []domain.PersonSummary, mode domain.LWOPMode) domain.ManagerSummary {
	studios := RollUpStudios(members, mode)
	return domain.ManagerSummary{
		Name:         domain.LabelOrUnassigned(name),
		Studios:      studios,
		RollupTotals: SumStudios(studios, mode),
	}
}

// RollUpCompany groups members by group manager, rolls each manager up and
// accumulates the company totals.
func RollUpCompany(members []domain.PersonSummary, mode domain.LWOPMode) domain.CompanySummary {
	byManager := make(map[string][]domain.PersonSummary)
	for _, m := range members {
		mgr := domain.LabelOrUnassigned(m.Manager)
		byManager[mgr] = append(byManager[mgr], m)
	}

	managers := make(map[string]domain.ManagerSummary, len(byManager))
	var totals domain.RollupTotals
	for _, name := range sortedKeys(byManager) {
		ms := RollUpManager(name, byManager[name], mode)
		managers[name] = ms
		totals = totals.Add(ms.RollupTotals)
	}
	return domain.CompanySummary{
		Managers:     managers,
		RollupTotals: withRatio(totals, mode),
	}
}

// MergeMembers collapses summaries that share a person ID into one entry,
// summing scheduled and category hours and recomputing Ratio B. The
// result is ordered by name, then ID.
func MergeMembers(members []domain.PersonSummary, mode domain.LWOPMode) []domain.PersonSummary {
	byKey := make(map[string]int, len(members))
	var out []domain.PersonSummary
	for _, m := range members {
		key := memberKey(m)
		if i, ok := byKey[key]; ok {
			out[i] = mergeMember(out[i], m, mode)
			continue
		}
		byKey[key] = len(out)
		out = append(out, cloneMember(m))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SumStudios adds studio totals in name order so repeated calls produce
// identical floats.
func SumStudios(studios map[string]domain.StudioSummary, mode domain.LWOPMode) domain.RollupTotals {
	var totals domain.RollupTotals
	for _, key := range sortedKeys(studios) {
		totals = totals.Add(studios[key].RollupTotals)
	}
	return withRatio(totals, mode)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func withRatio(t domain.RollupTotals, mode domain.LWOPMode) domain.RollupTotals {
	t.RatioB = RatioBFor(mode, t.DirectHours, t.ScheduledHours, t.PTOHours, t.LWOPHours)
	return t
}

// memberKey prefers the stable person ID; display names are only used for
// summaries that never had an ID.
func memberKey(m domain.PersonSummary) string {
	if m.ID != "" {
		return m.ID
	}
	return "name:" + m.Name
}

func cloneMember(m domain.PersonSummary) domain.PersonSummary {
	rows := make([]domain.AllocationRow, len(m.Rows))
	copy(rows, m.Rows)
	m.Rows = rows
	m.Studio = domain.LabelOrUnassigned(m.Studio)
	m.Manager = domain.LabelOrUnassigned(m.Manager)
	return m
}

func mergeMember(a, b domain.PersonSummary, mode domain.LWOPMode) domain.PersonSummary {
	merged := cloneMember(a)
	merged.ScheduledHours += b.ScheduledHours
	merged.CategoryTotals = merged.CategoryTotals.Add(b.CategoryTotals)
	merged.TotalHours = merged.CategoryTotals.TotalHours()
	merged.RatioB = RatioBFor(mode, merged.Direct, merged.ScheduledHours, merged.PTO, merged.LWOP)
	merged.Rows = append(merged.Rows, b.Rows...)
	return merged
}
