package extract

import "strings"

// HumanizeQueryType renders an operator tag as a readable phrase:
//
//	""        -> ""            (unset operator, returned unchanged)
//	"Equals"  -> "is"
//	"Before"  -> "is before"
//	"After"   -> "is after"
//	"All Of"  -> "is"
//	"Any Of"  -> "is"
//
// Unrecognized tags degrade to a lower-cased passthrough; the result is
// always lower-case.
func HumanizeQueryType(queryType string) string {
	switch queryType {
	case "":
		return ""
	case "Equals", "All Of", "Any Of":
		return "is"
	case "Before", "After":
		return strings.ToLower("is " + queryType)
	default:
		return strings.ToLower(queryType)
	}
}
