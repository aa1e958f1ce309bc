// Package label extracts neighborhood identifiers from the free-text nmsls label
// carried by each boundary polygon, e.g. "SIDOKEPUNG RT 1 RW 2 DUSUN Krajan".
package label

import (
	"regexp"
	"strings"

	"github.com/Ibramnsh/backend-sidokepung/internal/peta/models"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/numparse"
)

var (
	rtPattern    = regexp.MustCompile(`RT\s(\S+)`)
	rwPattern    = regexp.MustCompile(`RW\s(\S+)`)
	dusunPattern = regexp.MustCompile(`(?i)DUSUN\s(.+)`)
)

// Label holds the identifiers found in a label. RT and RW are the raw tokens
// (or models.Sentinel); RTCode and RWCode are their integer forms, nil when the
// marker is absent or the token has no numeric prefix.
type Label struct {
	RT     string
	RW     string
	RTCode *int
	RWCode *int
	Dusun  string
}

// HasUnitKey reports whether both codes parsed.
func (l Label) HasUnitKey() bool {
	return l.RTCode != nil && l.RWCode != nil
}

// Parse never fails; missing markers are reported as absent values.
func Parse(s string) Label {
	out := Label{RT: models.Sentinel, RW: models.Sentinel, Dusun: models.Sentinel}

	if m := rtPattern.FindStringSubmatch(s); m != nil {
		out.RT = m[1]
		out.RTCode = leadingInt(m[1])
	}
	if m := rwPattern.FindStringSubmatch(s); m != nil {
		out.RW = m[1]
		out.RWCode = leadingInt(m[1])
	}
	if m := dusunPattern.FindStringSubmatch(s); m != nil {
		out.Dusun = strings.TrimSpace(m[1])
	}
	return out
}

func leadingInt(tok string) *int {
	n, ok := numparse.LeadingInt(tok)
	if !ok {
		return nil
	}
	return &n
}
