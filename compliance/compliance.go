// Package compliance derives a business's permit standing from its DTI, SEC
// and CDA expiry dates. Both the directory filter and the map markers go
// through Classify so the two views can never disagree.
package compliance

import (
	"strings"
	"time"
)

type Status string

const (
	Compliant    Status = "compliant"
	Pending      Status = "pending"
	NonCompliant Status = "noncompliant"
)

const dateLayout = "2006-01-02"

// PendingWindow is how far ahead an expiry may fall before the business
// stops counting as compliant.
const PendingWindow = 30 * 24 * time.Hour

// Classify labels a business from its three permit expiry dates relative to
// today. A nil, empty or unparseable expiry counts as expiring today.
//
//   - compliant: all three expiries at least 30 days out
//   - noncompliant: any expiry strictly in the past
//   - pending: everything else (expiring within the next 30 days)
func Classify(today time.Time, dtiExpiry, secExpiry, cdaExpiry *string) Status {
	dti := parseExpiry(today, dtiExpiry)
	sec := parseExpiry(today, secExpiry)
	cda := parseExpiry(today, cdaExpiry)

	threshold := today.Add(PendingWindow)

	if !dti.Before(threshold) && !sec.Before(threshold) && !cda.Before(threshold) {
		return Compliant
	}
	if dti.Before(today) || sec.Before(today) || cda.Before(today) {
		return NonCompliant
	}
	return Pending
}

func parseExpiry(today time.Time, expiry *string) time.Time {
	if expiry == nil || *expiry == "" {
		return today
	}
	t, err := time.Parse(dateLayout, *expiry)
	if err != nil {
		return today
	}
	return t
}

// MatchesFilter reports whether a status passes the given directory filter.
// Unrecognized filter names (and "all") match everything.
func MatchesFilter(filter string, status Status) bool {
	switch f := Status(strings.ToLower(filter)); f {
	case Compliant, Pending, NonCompliant:
		return status == f
	default:
		return true
	}
}
