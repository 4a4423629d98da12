package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/google/uuid"
)

// WeekBatch is the complete set of rows for one person and one week.
type WeekBatch struct {
	PersonID  string
	WeekStart time.Time
	Rows      []domain.AllocationRow
}

// Batch is a converted import ready for persistence.
type Batch struct {
	People []domain.Person
	Weeks  []WeekBatch
}

// Convert transforms a validated ImportSchema into domain objects ready for
// persistence. Call ValidateImportSchema first; Convert assumes the schema is
// valid. Rows without an id receive a fresh one.
func Convert(schema *ImportSchema) (*Batch, error) {
	now := time.Now().UTC()

	people := make([]domain.Person, 0, len(schema.People))
	byEmail := make(map[string]string)
	for _, p := range schema.People {
		person := NormalizePerson(p)
		people = append(people, person)
		if person.Email != "" {
			byEmail[person.Email] = person.ID
		}
	}

	type weekKey struct {
		personID string
		week     string
	}
	grouped := make(map[weekKey]*WeekBatch)
	var order []weekKey

	for i, a := range schema.Allocations {
		row := NormalizeAllocation(a)
		if row.PersonID == "" {
			id, ok := byEmail[strings.ToLower(strings.TrimSpace(a.Email))]
			if !ok {
				return nil, fmt.Errorf("allocations[%d]: email %q not found", i, a.Email)
			}
			row.PersonID = id
		}

		week, err := domain.ParseWeek(a.Week)
		if err != nil {
			return nil, fmt.Errorf("allocations[%d]: parsing week: %w", i, err)
		}
		row.WeekStart = week
		if row.IsNew() {
			row.ID = uuid.New().String()
		}
		row.CreatedAt = now
		row.UpdatedAt = now

		key := weekKey{personID: row.PersonID, week: row.WeekKey()}
		wb, ok := grouped[key]
		if !ok {
			wb = &WeekBatch{PersonID: row.PersonID, WeekStart: week}
			grouped[key] = wb
			order = append(order, key)
		}
		wb.Rows = append(wb.Rows, row)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].week != order[j].week {
			return order[i].week < order[j].week
		}
		return order[i].personID < order[j].personID
	})

	weeks := make([]WeekBatch, 0, len(order))
	for _, k := range order {
		weeks = append(weeks, *grouped[k])
	}

	return &Batch{People: people, Weeks: weeks}, nil
}
