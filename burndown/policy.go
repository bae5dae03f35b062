package burndown

import (
	"strings"
	"time"
)

// UATMode selects how reaching the UAT status affects remaining points.
type UATMode int

const (
	// UATPermanent counts an issue as done from the first day it reaches UAT,
	// even if it is reopened later.
	UATPermanent UATMode = iota
	// UATTransient counts an issue as done only while it sits in UAT.
	UATTransient
)

func (m UATMode) String() string {
	switch m {
	case UATPermanent:
		return "permanent"
	case UATTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Policy decides how many of an issue's points are still remaining on a day.
type Policy struct {
	Tracked   map[string]struct{}
	UATStatus string
	UAT       UATMode
}

func NewPolicy(tracked []string, uatStatus string, uatPermanent bool) Policy {
	set := make(map[string]struct{}, len(tracked))
	for _, name := range tracked {
		if clean := strings.TrimSpace(name); clean != "" {
			set[clean] = struct{}{}
		}
	}
	mode := UATTransient
	if uatPermanent {
		mode = UATPermanent
	}
	return Policy{
		Tracked:   set,
		UATStatus: strings.TrimSpace(uatStatus),
		UAT:       mode,
	}
}

func (p Policy) IsTracked(status string) bool {
	_, ok := p.Tracked[status]
	return ok
}

// Evaluate returns the issue's status on day and the points it still
// contributes to the burndown.
func (p Policy) Evaluate(points float64, t Timeline, day time.Time) (string, float64) {
	status := t.StatusOn(day)

	if p.UATStatus != "" {
		if uatDate, ok := FirstDateReaching(t.Changes, p.UATStatus); ok && !day.Before(uatDate) {
			switch p.UAT {
			case UATPermanent:
				return status, 0
			case UATTransient:
				if status == p.UATStatus {
					return status, 0
				}
			}
		}
	}

	if p.IsTracked(status) {
		return status, points
	}
	return status, 0
}
