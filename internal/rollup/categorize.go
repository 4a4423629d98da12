package rollup

import (
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// Project number prefixes for internal (non-client) codes.
const (
	InternalPrefix  = "0000-0000"
	AvailablePrefix = "0000-0000-AVAIL_HOURS"
	LWOPPrefix      = "0000-0000-LWOP"
)

// PTOPrefixes are the leave codes summed together as PTO/holiday.
var PTOPrefixes = []string{
	"0000-0000-0PTO",
	"0000-0000-0HOL",
	"0000-0000-0SIC",
	"0000-0000-JURY",
}

// Categorize classifies a project number. Rules are checked in priority
// order and the first match wins; matching is a case-sensitive prefix test.
func Categorize(projectNumber string) domain.Category {
	if strings.HasPrefix(projectNumber, AvailablePrefix) {
		return domain.CategoryAvailable
	}
	for _, p := range PTOPrefixes {
		if strings.HasPrefix(projectNumber, p) {
			return domain.CategoryPTOHoliday
		}
	}
	if strings.HasPrefix(projectNumber, LWOPPrefix) {
		return domain.CategoryLWOP
	}
	if IsInternal(projectNumber) {
		return domain.CategoryIndirect
	}
	return domain.CategoryDirect
}

// CategorizeRow classifies a row. The AvailableHours flag takes priority
// over any prefix.
func CategorizeRow(r domain.AllocationRow) domain.Category {
	if r.AvailableHours {
		return domain.CategoryAvailable
	}
	return Categorize(r.ProjectNumber)
}

// IsInternal reports whether a project number uses the internal code
// prefix, i.e. is anything other than direct client work by number.
func IsInternal(projectNumber string) bool {
	return strings.HasPrefix(projectNumber, InternalPrefix)
}
