package domain

// Category is the mutually exclusive bucket an allocation row's hours fall into.
type Category string

const (
	CategoryDirect     Category = "DIRECT"
	CategoryPTOHoliday Category = "PTO_HOLIDAY"
	CategoryLWOP       Category = "LWOP"
	CategoryIndirect   Category = "INDIRECT"
	CategoryAvailable  Category = "AVAILABLE"
)

// Categories lists every category in categorization priority order.
var Categories = []Category{
	CategoryAvailable,
	CategoryPTOHoliday,
	CategoryLWOP,
	CategoryIndirect,
	CategoryDirect,
}

// LWOPMode selects whether leave without pay is removed from the Ratio B
// denominator alongside PTO/holiday hours.
type LWOPMode string

const (
	// LWOPExcluded subtracts only PTO/holiday hours. Used by the single-user
	// weekly view and the studio/manager/company rollups.
	LWOPExcluded LWOPMode = "exclude"
	// LWOPSubtracted also subtracts LWOP hours. Used by the per-user dashboard.
	LWOPSubtracted LWOPMode = "subtract"
)

// ValidLWOPModes is the canonical set of accepted LWOP mode strings.
var ValidLWOPModes = map[string]bool{
	"exclude": true, "subtract": true,
}
