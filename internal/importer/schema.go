package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// ImportSchema is the top-level JSON structure for an allocation import.
// Field names follow the upstream allocation API, which publishes several
// aliases for the same value.
type ImportSchema struct {
	People      []PersonImport     `json:"people"`
	Allocations []AllocationImport `json:"allocations"`
}

// PersonImport defines one employee in the import file.
type PersonImport struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Studio         string     `json:"studio,omitempty"`
	StudioLeader   string     `json:"studio_leader,omitempty"`
	GroupName      string     `json:"GroupName,omitempty"`
	Manager        string     `json:"manager,omitempty"`
	GroupManager   string     `json:"group_manager,omitempty"`
	ScheduledHours FlexNumber `json:"scheduled_hours"`
}

// AllocationImport defines one allocation row in the import file. For every
// aliased pair the ra_/domain-specific field wins over the generic one.
type AllocationImport struct {
	ID       string `json:"id,omitempty"`
	PersonID string `json:"person_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Week     string `json:"week"`

	ProjID        string `json:"proj_id,omitempty"`
	ProjectNumber string `json:"project_number,omitempty"`
	ProjName      string `json:"proj_name,omitempty"`
	ProjectName   string `json:"project_name,omitempty"`
	MilestoneName string `json:"milestone_name,omitempty"`
	PM            string `json:"pm,omitempty"`
	ProjectMgr    string `json:"project_manager,omitempty"`

	ContractLabor    FlexNumber `json:"contract_labor"`
	Labor            FlexNumber `json:"labor"`
	PctLaborUsed     FlexNumber `json:"pct_labor_used"`
	PercentLaborUsed FlexNumber `json:"percent_labor_used"`
	RaHours          FlexNumber `json:"ra_hours"`
	Hours            FlexNumber `json:"hours"`

	RaRemarks string `json:"ra_remarks,omitempty"`
	Remarks   string `json:"remarks,omitempty"`

	AvailableHours FlexBool `json:"available_hours"`
}

// FlexNumber accepts a JSON number, a numeric string, or null. The raw text
// is kept and only interpreted on demand.
type FlexNumber struct {
	raw string
	set bool
}

// NewFlexNumber builds a FlexNumber from its textual form.
func NewFlexNumber(raw string) FlexNumber {
	return FlexNumber{raw: raw, set: true}
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = FlexNumber{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FlexNumber{raw: s, set: true}
		return nil
	}
	*n = FlexNumber{raw: string(data), set: true}
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// IsSet reports whether the field was present and non-null.
func (n FlexNumber) IsSet() bool {
	return n.set
}

// Valid reports whether the field was set to a finite number. Blank and
// malformed strings are not valid.
func (n FlexNumber) Valid() bool {
	if !n.set {
		return false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(n.raw), 64)
	return err == nil && domain.FiniteOrZero(f) == f
}

// Float parses the value. Absent or malformed values yield 0.
func (n FlexNumber) Float() float64 {
	if !n.set {
		return 0
	}
	return domain.ParseFloatOrZero(n.raw)
}

// FlexBool accepts true/false, numbers, or strings and reports truthiness:
// non-zero numbers and non-empty strings other than "false"/"0" are true.
// Objects, arrays and anything else unrecognized read as false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*b = false
	case bytes.Equal(data, []byte("true")):
		*b = true
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.ToLower(strings.TrimSpace(s))
		*b = FlexBool(s != "" && s != "false" && s != "0")
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		*b = FlexBool(err == nil && f != 0)
	}
	return nil
}

// LoadImportSchema reads and parses an allocation import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses allocation import JSON.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
