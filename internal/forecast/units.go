package forecast

// ValueUnit is a single measurement paired with its unit code, e.g. 12.5 "C".
type ValueUnit struct {
	Value float64 `src:"Value" json:"value"`
	Unit  string  `src:"Unit" json:"unit" validate:"required"`
}

// MultimetricTemperature is the same reading expressed in metric and imperial units.
type MultimetricTemperature struct {
	Metric   ValueUnit `src:"Metric" json:"metric"`
	Imperial ValueUnit `src:"Imperial" json:"imperial"`
}

// MinMaxTemperature is a temperature range as reported by the provider.
type MinMaxTemperature struct {
	Minimum ValueUnit `src:"Minimum" json:"minimum"`
	Maximum ValueUnit `src:"Maximum" json:"maximum"`
}

// Probability is a chance of occurrence in [0,1].
// Fields sourced from percentages carry the "percent" mapping option.
type Probability float64

var _ = MustRegister(ValueUnit{}, MultimetricTemperature{}, MinMaxTemperature{})
