package api

//FailurePredictionPoint is one point of the failure probability series.
//Date is a label and may be relative (e.g. "Today").
type FailurePredictionPoint struct {
	Date        string  `json:"date" yaml:"date"`
	Probability float64 `json:"probability" yaml:"probability"` //0-100
	Trend       float64 `json:"trend" yaml:"trend"`             //0-100, smoothed
}

//Validate validates the given FailurePredictionPoint
func (p FailurePredictionPoint) Validate() error {
	if err := ValidateString("date", p.Date, 64); err != nil {
		return err
	}
	if err := ValidatePercent("probability", p.Probability); err != nil {
		return err
	}
	return ValidatePercent("trend", p.Trend)
}

//Field returns the value of the field with the given JSON name
func (p FailurePredictionPoint) Field(name string) (interface{}, bool) {
	switch name {
	case "date":
		return p.Date, true
	case "probability":
		return p.Probability, true
	case "trend":
		return p.Trend, true
	}
	return nil, false
}
