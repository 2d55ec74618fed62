package engine

import (
	"strings"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/normalize"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

// applyFieldRules runs each rule against the full document text and stores
// the first match into the rule's namespace. Rules are independent: a rule
// that fails to match never blocks the others, and nothing is required at
// this stage; absences surface in validation.
func applyFieldRules(res *Result, rules []profile.FieldRule, text, language string) {
	for _, rule := range rules {
		m := rule.Regexp().FindStringSubmatch(text)
		if m == nil || rule.Group >= len(m) {
			continue
		}
		value := strings.TrimSpace(m[rule.Group])
		if value == "" {
			continue
		}
		target := res.Namespace(rule.Target)
		switch rule.Type {
		case constants.TypeDate:
			if iso := normalize.NormalizeDate(value, language); iso != "" {
				target[rule.Name] = iso
			}
		case constants.TypeNumber:
			v := normalize.ParseNumber(value)
			if rule.Target == constants.NamespaceTotals {
				target[rule.Name] = normalize.FormatMoney(v)
			} else {
				target[rule.Name] = normalize.FormatAmount(v)
			}
		default:
			target[rule.Name] = value
		}
	}
}
