package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// ValidateImportSchema checks the structure needed to store an import:
// people must be identifiable and every allocation must name a known person
// and a valid week. Hour and label values are never rejected; they fall back
// to defaults during normalization.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	ids := make(map[string]bool)
	emails := make(map[string]bool)
	errs = append(errs, validatePeople(schema.People, ids, emails)...)
	errs = append(errs, validateAllocations(schema.Allocations, ids, emails)...)

	return errs
}

func validatePeople(people []PersonImport, ids, emails map[string]bool) []error {
	var errs []error
	for i, p := range people {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("people[%d].id is required", i))
			continue
		}
		if ids[id] {
			errs = append(errs, fmt.Errorf("people[%d].id: duplicate id %q", i, id))
			continue
		}
		ids[id] = true
		if email := strings.ToLower(strings.TrimSpace(p.Email)); email != "" {
			emails[email] = true
		}
	}
	return errs
}

func validateAllocations(allocs []AllocationImport, ids, emails map[string]bool) []error {
	var errs []error
	for i, a := range allocs {
		prefix := fmt.Sprintf("allocations[%d]", i)

		personID := strings.TrimSpace(a.PersonID)
		email := strings.ToLower(strings.TrimSpace(a.Email))
		switch {
		case personID != "":
			if !ids[personID] {
				errs = append(errs, fmt.Errorf("%s.person_id %q not found in people", prefix, personID))
			}
		case email != "":
			if !emails[email] {
				errs = append(errs, fmt.Errorf("%s.email %q not found in people", prefix, email))
			}
		default:
			errs = append(errs, fmt.Errorf("%s: person_id or email is required", prefix))
		}

		if a.Week == "" {
			errs = append(errs, fmt.Errorf("%s.week is required", prefix))
		} else if _, err := domain.ParseWeek(a.Week); err != nil {
			errs = append(errs, fmt.Errorf("%s.week: invalid date format %q (expected YYYY-MM-DD)", prefix, a.Week))
		}
	}
	return errs
}
