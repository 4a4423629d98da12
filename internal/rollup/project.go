package rollup

import (
	"sort"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// RollupByProject regroups every member's direct rows by project number.
// Rows under an internal 0000-0000 code are skipped, as are rows flagged as
// available hours even when they name a client project, so project totals
// always equal the members' direct hours. A member with several
// rows against one project gets a single team entry with the hours merged
// and the first non-empty remark kept. Output order is unspecified; use
// SortProjects before display.
func RollupByProject(members []domain.PersonSummary) []domain.ProjectSummary {
	var projects []domain.ProjectSummary
	projectIdx := make(map[string]int)
	memberIdx := make(map[string]map[string]int)

	for _, m := range members {
		key := memberKey(m)
		for _, r := range m.Rows {
			if CategorizeRow(r) != domain.CategoryDirect {
				continue
			}
			hours := rowHours(r)

			pi, ok := projectIdx[r.ProjectNumber]
			if !ok {
				pi = len(projects)
				projectIdx[r.ProjectNumber] = pi
				memberIdx[r.ProjectNumber] = make(map[string]int)
				projects = append(projects, domain.ProjectSummary{
					ProjectNumber: r.ProjectNumber,
				})
			}
			p := &projects[pi]
			backfillProject(p, r)
			p.TotalHours += hours

			team := memberIdx[r.ProjectNumber]
			ti, ok := team[key]
			if !ok {
				team[key] = len(p.TeamMembers)
				p.TeamMembers = append(p.TeamMembers, domain.TeamMember{
					ID:      m.ID,
					Name:    m.Name,
					Hours:   hours,
					Studio:  domain.LabelOrUnassigned(m.Studio),
					Remarks: r.Remarks,
				})
				continue
			}
			tm := &p.TeamMembers[ti]
			tm.Hours += hours
			if tm.Remarks == "" {
				tm.Remarks = r.Remarks
			}
		}
	}
	return projects
}

// backfillProject copies descriptive fields from r into any still-empty
// slots of p.
func backfillProject(p *domain.ProjectSummary, r domain.AllocationRow) {
	p.ProjectName = domain.CoalesceStr(p.ProjectName, r.ProjectName)
	p.PM = domain.CoalesceStr(p.PM, r.ProjectManager)
	if p.Labor == 0 {
		p.Labor = domain.FiniteOrZero(r.ContractLabor)
	}
	if p.PctLaborUsed == 0 {
		p.PctLaborUsed = domain.FiniteOrZero(r.PercentLaborUsed)
	}
}

// SortProjects orders projects by project number, and each project's team
// by member name.
func SortProjects(projects []domain.ProjectSummary) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].ProjectNumber < projects[j].ProjectNumber
	})
	for i := range projects {
		team := projects[i].TeamMembers
		sort.SliceStable(team, func(a, b int) bool {
			return team[a].Name < team[b].Name
		})
	}
}

// FilterByPM keeps the projects managed by pm. An empty pm keeps everything.
func FilterByPM(projects []domain.ProjectSummary, pm string) []domain.ProjectSummary {
	if pm == "" {
		return projects
	}
	var out []domain.ProjectSummary
	for _, p := range projects {
		if p.PM == pm {
			out = append(out, p)
		}
	}
	return out
}
