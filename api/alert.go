package api

import "fmt"

//Severity is the severity of an anomaly Alert
type Severity string

//Severities
const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

//Severities lists all valid severities in ascending order
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

//Valid returns whether s is a known severity
func (s Severity) Valid() bool {
	for _, v := range Severities {
		if s == v {
			return true
		}
	}
	return false
}

//Alert represents an anomaly detected on a piece of equipment.
//EquipmentName is a snapshot of Equipment.Name taken when the alert was raised;
//it is never re-synced with the Equipment collection.
type Alert struct {
	ID            string   `json:"id" yaml:"id"`
	EquipmentID   string   `json:"equipmentId" yaml:"equipmentId"`
	EquipmentName string   `json:"equipmentName" yaml:"equipmentName"`
	Message       string   `json:"message" yaml:"message"`
	Severity      Severity `json:"severity" yaml:"severity"`
	Timestamp     string   `json:"timestamp" yaml:"timestamp"` //free-form, not normalized
}

//Validate validates the given Alert
func (a Alert) Validate() error {
	if err := ValidateString("id", a.ID, 64); err != nil {
		return err
	}
	if err := ValidateString("equipmentId", a.EquipmentID, 64); err != nil {
		return err
	}
	if err := ValidateOptionalString("equipmentName", a.EquipmentName, 255); err != nil {
		return err
	}
	if err := ValidateString("message", a.Message, 1024); err != nil {
		return err
	}
	if !a.Severity.Valid() {
		return fmt.Errorf("severity %q is not one of %v", a.Severity, Severities)
	}
	return ValidateOptionalString("timestamp", a.Timestamp, 64)
}

//Field returns the value of the field with the given JSON name
func (a Alert) Field(name string) (interface{}, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "equipmentId":
		return a.EquipmentID, true
	case "equipmentName":
		return a.EquipmentName, true
	case "message":
		return a.Message, true
	case "severity":
		return string(a.Severity), true
	case "timestamp":
		return a.Timestamp, true
	}
	return nil, false
}
