package sizing

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/kilianp07/evsizer/core/model"
)

var (
	timesReplacer = strings.NewReplacer("×", "x", "✕", "x", "✖", "x", "*", "x")
	quoteStripper = strings.NewReplacer(
		`"`, "", "'", "", "`", "",
		"“", "", "”", "", "‘", "", "’", "",
		"′", "", "″", "",
	)

	spaceAroundPunct = regexp.MustCompile(`\s*([()/])\s*`)
	spacedTimes      = regexp.MustCompile(`([0-9)])\s*x\s*([0-9(])`)
)

// Normalize returns the grouping key of a cable specification. Specs that
// differ only in case, multiplication symbol, quoting or spacing share a key.
func Normalize(spec string) string {
	s := norm.NFKC.String(spec)
	// A Caser may keep state and is not safe to share between goroutines.
	s = cases.Fold().String(s)
	s = timesReplacer.Replace(s)
	s = quoteStripper.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = spaceAroundPunct.ReplaceAllString(s, "$1")
	// Matches consume the right operand, so chains like "4 x 1 x 240" need
	// more than one pass.
	for {
		next := spacedTimes.ReplaceAllString(s, "${1}x${2}")
		if next == s {
			break
		}
		s = next
	}
	return s
}

// Group partitions lines by the normalized cable spec. Groups keep the order
// in which their key was first seen and members stay in index order. Empty
// charger slots (no label) are left out. lines is not modified.
func Group(lines []model.ChargerLine) []model.ChargerLineGroup {
	var groups []model.ChargerLineGroup
	byKey := make(map[string]int)
	seenConduit := make(map[string]map[string]bool)
	for i, l := range lines {
		if strings.TrimSpace(l.Label) == "" {
			continue
		}
		key := Normalize(l.CableSpec)
		gi, ok := byKey[key]
		if !ok {
			gi = len(groups)
			byKey[key] = gi
			seenConduit[key] = make(map[string]bool)
			groups = append(groups, model.ChargerLineGroup{
				NormalizedKey:    key,
				DisplayCableSpec: strings.TrimSpace(l.CableSpec),
				ConduitOptions:   []string{},
			})
		}
		g := &groups[gi]
		g.MemberIndices = append(g.MemberIndices, i)
		conduit := strings.TrimSpace(l.ConduitSpec)
		if conduit == "" {
			continue
		}
		ck := Normalize(conduit)
		if seenConduit[key][ck] {
			continue
		}
		seenConduit[key][ck] = true
		g.ConduitOptions = append(g.ConduitOptions, conduit)
	}
	return groups
}

// DisplayLines renders groups as report lines. Single member groups read
// "Charger3: <cable>", larger ones "Charger1, Charger3 (x2): <cable>".
// Positions are numbered from one.
func DisplayLines(groups []model.ChargerLineGroup) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		names := make([]string, len(g.MemberIndices))
		for i, idx := range g.MemberIndices {
			names[i] = fmt.Sprintf("Charger%d", idx+1)
		}
		head := strings.Join(names, ", ")
		if len(names) > 1 {
			head = fmt.Sprintf("%s (x%d)", head, len(names))
		}
		out = append(out, head+": "+g.DisplayCableSpec)
	}
	return out
}
