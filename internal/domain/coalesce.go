package domain

import (
	"math"
	"strconv"
	"strings"
)

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Float64FromPtrWithDefault returns the first non-nil *float64 value, or the fallback.
func Float64FromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// BoolFromPtrWithDefault returns the first non-nil *bool value, or the fallback.
func BoolFromPtrWithDefault(fallback bool, ptrs ...*bool) bool {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// ParseFloatOrZero parses s as a float64. Blank, malformed, NaN and
// infinite values all yield 0.
func ParseFloatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return FiniteOrZero(f)
}

// FiniteOrZero maps NaN and ±Inf to 0.
func FiniteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ScheduledHoursOrDefault returns h when it is a positive finite number,
// otherwise DefaultScheduledHours.
func ScheduledHoursOrDefault(h float64) float64 {
	h = FiniteOrZero(h)
	if h <= 0 {
		return DefaultScheduledHours
	}
	return h
}

// LabelOrUnassigned trims s and substitutes UnassignedLabel when blank.
func LabelOrUnassigned(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnassignedLabel
	}
	return s
}
