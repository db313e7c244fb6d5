package validate

import (
	"strconv"
	"strings"

	"github.com/femnad/modgate/entity"
)

var comparators = []string{">=", "<=", ">", "<", "="}

// Major returns the part of a release preceding the first dot.
func Major(release string) string {
	major, _, _ := strings.Cut(release, ".")
	return major
}

func splitBound(release string) (string, string) {
	release = strings.TrimSpace(release)
	for _, op := range comparators {
		if strings.HasPrefix(release, op) {
			return op, strings.TrimSpace(strings.TrimPrefix(release, op))
		}
	}
	return "", release
}

func parseSegment(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// compareVersions compares dot separated versions numerically segment by segment,
// missing segments counting as zero. Non-numeric segments compare lexically.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var x, y string
		if i < len(as) {
			x = as[i]
		}
		if i < len(bs) {
			y = bs[i]
		}

		xn, xok := parseSegment(x)
		yn, yok := parseSegment(y)
		if x == "" {
			xn, xok = 0, true
		}
		if y == "" {
			yn, yok = 0, true
		}

		switch {
		case xok && yok:
			if xn != yn {
				if xn < yn {
					return -1
				}
				return 1
			}
		default:
			if c := strings.Compare(x, y); c != 0 {
				return c
			}
		}
	}
	return 0
}

func satisfies(op string, actual, bound string) bool {
	cmp := compareVersions(actual, bound)
	switch op {
	case ">=":
		return cmp >= 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case "<":
		return cmp < 0
	default:
		return cmp == 0
	}
}

// releaseMatches reports whether a declared release, exact or a bound like ">= 14.04",
// covers the fact's release at the given granularity.
func releaseMatches(declared string, fact entity.Release, match entity.ReleaseMatch) bool {
	op, version := splitBound(declared)

	switch match {
	case entity.MatchNone:
		return true
	case entity.MatchFull:
		if op == "" {
			return version == fact.Full
		}
		return satisfies(op, fact.Full, version)
	default:
		if op == "" {
			return Major(version) == fact.Major
		}
		return satisfies(op, fact.Major, Major(version))
	}
}

func anyReleaseMatches(declared []string, fact entity.Release, match entity.ReleaseMatch) bool {
	for _, release := range declared {
		if releaseMatches(release, fact, match) {
			return true
		}
	}
	return false
}
