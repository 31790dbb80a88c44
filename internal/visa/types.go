package visa

// Country is a passport issuer or a travel destination as served by the
// catalog endpoints. Passports and destinations share the same shape.
type Country struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// Option is one selectable combobox entry.
type Option struct {
	Value string
	Label string
}

// Rule describes the entry requirements for one passport/destination pair.
// VisaDays is the maximum visa-free stay; zero means no duration limit.
type Rule struct {
	CountryName    string `json:"countryName"`
	IsVisaRequired bool   `json:"isVisaRequired"`
	IsEVisa        bool   `json:"isEVisa"`
	VisaDays       int    `json:"visaDays"`
}

// DurationDependent reports whether the outcome depends on the stay length.
func (r Rule) DurationDependent() bool {
	return !r.IsVisaRequired && !r.IsEVisa && r.VisaDays > 0
}

// Table is the per-passport visa table. Countries is nil when the payload
// carried no countries array.
type Table struct {
	Countries *[]Rule `json:"countries"`
}

// Find returns the rule for the destination slug.
func (t Table) Find(slug string) (Rule, bool) {
	if t.Countries == nil {
		return Rule{}, false
	}
	for _, rule := range *t.Countries {
		if rule.CountryName == slug {
			return rule, true
		}
	}
	return Rule{}, false
}

// OptionFor converts a catalog entry into a combobox option.
func OptionFor(c Country) Option {
	return Option{Value: c.ID, Label: Deslugify(c.Slug)}
}
