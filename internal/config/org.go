package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
	"gopkg.in/yaml.v3"
)

// OrgFile is the organization directory: studios, their group manager
// and the people who report into them.
type OrgFile struct {
	Studios []OrgStudio `yaml:"studios"`
}

type OrgStudio struct {
	Name    string `yaml:"name"`
	Manager string `yaml:"manager"`
	// ScheduledHours applies to members that do not set their own.
	ScheduledHours float64     `yaml:"scheduled_hours,omitempty"`
	People         []OrgPerson `yaml:"people"`
}

type OrgPerson struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Email          string  `yaml:"email,omitempty"`
	Manager        string  `yaml:"manager,omitempty"`
	ScheduledHours float64 `yaml:"scheduled_hours,omitempty"`
}

// LoadOrgFile reads an organization file. A missing file yields nil, nil.
func LoadOrgFile(path string) (*OrgFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading org file: %w", err)
	}
	return ParseOrgFile(data)
}

// ParseOrgFile decodes and validates organization YAML.
func ParseOrgFile(data []byte) (*OrgFile, error) {
	var org OrgFile
	if err := yaml.Unmarshal(data, &org); err != nil {
		return nil, fmt.Errorf("parsing org file: %w", err)
	}

	seen := make(map[string]bool)
	for si, s := range org.Studios {
		for pi, p := range s.People {
			id := strings.TrimSpace(p.ID)
			if id == "" {
				return nil, fmt.Errorf("studios[%d].people[%d]: id is required", si, pi)
			}
			if seen[id] {
				return nil, fmt.Errorf("studios[%d].people[%d]: duplicate id %q", si, pi, id)
			}
			seen[id] = true
		}
	}
	return &org, nil
}

// People flattens the file into directory records. A person-level manager
// overrides the studio's; scheduled hours fall back from person to studio
// to defaultHours.
func (o *OrgFile) People(defaultHours float64) []domain.Person {
	if o == nil {
		return nil
	}
	var out []domain.Person
	for _, s := range o.Studios {
		for _, p := range s.People {
			hours := p.ScheduledHours
			if hours <= 0 {
				hours = s.ScheduledHours
			}
			if hours <= 0 {
				hours = defaultHours
			}
			out = append(out, domain.Person{
				ID:             strings.TrimSpace(p.ID),
				Name:           p.Name,
				Email:          strings.ToLower(strings.TrimSpace(p.Email)),
				Studio:         domain.LabelOrUnassigned(s.Name),
				Manager:        domain.LabelOrUnassigned(domain.CoalesceStr(p.Manager, s.Manager)),
				ScheduledHours: domain.ScheduledHoursOrDefault(hours),
			})
		}
	}
	return out
}
