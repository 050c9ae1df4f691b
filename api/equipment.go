package api

import "fmt"

//EquipmentStatus is the health status of a piece of equipment
type EquipmentStatus string

//EquipmentStatuses
const (
	StatusOperational EquipmentStatus = "Operational"
	StatusWarning     EquipmentStatus = "Warning"
	StatusCritical    EquipmentStatus = "Critical"
)

//EquipmentStatuses lists all valid statuses in severity order
var EquipmentStatuses = []EquipmentStatus{StatusOperational, StatusWarning, StatusCritical}

//Valid returns whether s is a known status
func (s EquipmentStatus) Valid() bool {
	for _, v := range EquipmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

//Equipment represents a monitored machine and its latest sensor readings
type Equipment struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Status      EquipmentStatus `json:"status" yaml:"status"`
	Temperature float64         `json:"temperature" yaml:"temperature"` //°C
	Vibration   float64         `json:"vibration" yaml:"vibration"`     //g
	Pressure    float64         `json:"pressure" yaml:"pressure"`       //bar
}

//Validate validates the given Equipment
func (e Equipment) Validate() error {
	if err := ValidateString("id", e.ID, 64); err != nil {
		return err
	}
	if err := ValidateString("name", e.Name, 255); err != nil {
		return err
	}
	if !e.Status.Valid() {
		return fmt.Errorf("status %q is not one of %v", e.Status, EquipmentStatuses)
	}
	return nil
}

//Field returns the value of the field with the given JSON name
func (e Equipment) Field(name string) (interface{}, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "name":
		return e.Name, true
	case "status":
		return string(e.Status), true
	case "temperature":
		return e.Temperature, true
	case "vibration":
		return e.Vibration, true
	case "pressure":
		return e.Pressure, true
	}
	return nil, false
}
