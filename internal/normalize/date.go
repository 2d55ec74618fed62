package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// monthName maps a localized month name to its zero-padded number.
type monthName struct {
	name string
	num  string
}

var monthTables = map[string][]monthName{
	"en": {
		{"january", "01"}, {"february", "02"}, {"march", "03"}, {"april", "04"},
		{"may", "05"}, {"june", "06"}, {"july", "07"}, {"august", "08"},
		{"september", "09"}, {"october", "10"}, {"november", "11"}, {"december", "12"},
		{"jan", "01"}, {"feb", "02"}, {"mar", "03"}, {"apr", "04"}, {"jun", "06"},
		{"jul", "07"}, {"aug", "08"}, {"sep", "09"}, {"oct", "10"}, {"nov", "11"}, {"dec", "12"},
	},
	"nl": {
		{"januari", "01"}, {"februari", "02"}, {"maart", "03"}, {"april", "04"},
		{"mei", "05"}, {"juni", "06"}, {"juli", "07"}, {"augustus", "08"},
		{"september", "09"}, {"oktober", "10"}, {"november", "11"}, {"december", "12"},
		{"okt", "10"},
	},
	"fr": {
		{"janvier", "01"}, {"février", "02"}, {"mars", "03"}, {"avril", "04"},
		{"mai", "05"}, {"juin", "06"}, {"juillet", "07"}, {"août", "08"},
		{"septembre", "09"}, {"octobre", "10"}, {"novembre", "11"}, {"décembre", "12"},
		{"aout", "08"}, {"fevrier", "02"}, {"decembre", "12"},
	},
}

var (
	reDateNoise = regexp.MustCompile(`[^\d\-/.]`)
	reDateSplit = regexp.MustCompile(`[\-/.\s]+`)
	reAllDigits = regexp.MustCompile(`^\d+$`)
)

// NormalizeDate converts a localized date string to ISO 8601 (YYYY-MM-DD).
// The language hint orders month-name lookup; all languages remain as
// fallback. Returns "" for anything not reducible to exactly three numeric
// parts. Two-digit years are mapped into 2000-2099.
func NormalizeDate(dateStr, language string) string {
	if strings.TrimSpace(dateStr) == "" {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(dateStr))

	// Replace the first month name found. Longer names first so that
	// "mars" never matches the English "mar" prefix.
	for _, mn := range monthLookup(language) {
		if strings.Contains(s, mn.name) {
			s = strings.Replace(s, mn.name, mn.num, 1)
			break
		}
	}

	s = reDateNoise.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	parts := reDateSplit.Split(s, -1)
	fields := parts[:0]
	for _, p := range parts {
		if p != "" {
			fields = append(fields, p)
		}
	}
	if len(fields) != 3 {
		return ""
	}
	for _, f := range fields {
		if !reAllDigits.MatchString(f) {
			return ""
		}
	}

	var y, m, d string
	switch {
	case len(fields[0]) == 4: // YYYY-MM-DD
		y, m, d = fields[0], fields[1], fields[2]
	case len(fields[2]) == 4: // DD-MM-YYYY
		d, m, y = fields[0], fields[1], fields[2]
	default: // DD-MM-YY, assume 2000s
		d, m, y = fields[0], fields[1], fields[2]
		y = "20" + zeroPad(y)
	}

	return y + "-" + zeroPad(m) + "-" + zeroPad(d)
}

// monthLookup returns the hinted language's months first, then every other
// language's as fallback, longest names first within each group.
func monthLookup(language string) []monthName {
	ordered := make([]monthName, 0, 48)
	seen := make(map[string]struct{})
	appendTable := func(table []monthName) {
		group := make([]monthName, 0, len(table))
		for _, mn := range table {
			if _, ok := seen[mn.name]; ok {
				continue
			}
			seen[mn.name] = struct{}{}
			group = append(group, mn)
		}
		sort.SliceStable(group, func(i, j int) bool {
			return len(group[i].name) > len(group[j].name)
		})
		ordered = append(ordered, group...)
	}
	if table, ok := monthTables[language]; ok {
		appendTable(table)
	}
	for _, lang := range []string{"en", "nl", "fr"} {
		if lang != language {
			appendTable(monthTables[lang])
		}
	}
	return ordered
}

func zeroPad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
