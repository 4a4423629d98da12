package rollup

import "github.com/alexanderramin/timesheet/internal/domain"

// RatioB returns direct hours as a fraction of scheduled hours net of leave.
// lwop is optional and defaults to 0; only the first value is used. A
// non-positive (or NaN) denominator yields 0.
func RatioB(direct, scheduled, pto float64, lwop ...float64) float64 {
	var l float64
	if len(lwop) > 0 {
		l = lwop[0]
	}
	denominator := scheduled - pto - l
	if !(denominator > 0) {
		return 0
	}
	return domain.FiniteOrZero(direct / denominator)
}

// RatioBFor applies RatioB with LWOP subtracted or not according to mode.
func RatioBFor(mode domain.LWOPMode, direct, scheduled, pto, lwop float64) float64 {
	if mode == domain.LWOPSubtracted {
		return RatioB(direct, scheduled, pto, lwop)
	}
	return RatioB(direct, scheduled, pto)
}
