package visa

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Class tags a verdict for styling.
type Class string

const (
	ClassNone         Class = ""
	ClassVisaRequired Class = "vr"
	ClassEVisa        Class = "ev"
	ClassVisaFree     Class = "vf"
)

// Verdict is the user-facing outcome for a rule and a stay length.
type Verdict struct {
	Text  string
	Class Class
}

// Empty reports whether there is nothing to show yet.
func (v Verdict) Empty() bool {
	return v.Text == "" && v.Class == ClassNone
}

// Message derives the verdict for rule given the raw stay-length text.
func Message(rule Rule, daysText string) Verdict {
	if rule.IsVisaRequired {
		return Verdict{Text: visaRequiredText, Class: ClassVisaRequired}
	}
	if rule.IsEVisa {
		return Verdict{Text: eVisaRequiredText, Class: ClassEVisa}
	}
	if rule.VisaDays <= 0 {
		return Verdict{Text: visaFreeText, Class: ClassVisaFree}
	}
	days, ok := ParseDays(daysText)
	if !ok {
		return Verdict{}
	}
	if days <= rule.VisaDays {
		return Verdict{Text: visaFreeText, Class: ClassVisaFree}
	}
	return Verdict{Text: fmt.Sprintf(visaBeyondFormat, rule.VisaDays), Class: ClassVisaRequired}
}

// ParseDays reads a leading integer: optional whitespace, an optional sign,
// then digits. Anything after the digits is ignored. Values beyond the int
// range saturate.
func ParseDays(text string) (int, bool) {
	s := strings.TrimLeft(text, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// Guidance returns the prompt for the next step, or "" when nothing is missing.
func Guidance(passportSet, countrySet bool, daysText string) string {
	switch {
	case !passportSet:
		return PickPassportHint
	case !countrySet:
		return PickCountryHint
	case daysText == "":
		return EnterDaysHint
	}
	return ""
}
