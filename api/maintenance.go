package api

import (
	"fmt"
	"strings"
)

//MaintenanceLog is a historical maintenance action.
//Equipment is a free-text identifier and is not required to match an Equipment.ID.
type MaintenanceLog struct {
	ID        string `json:"id" yaml:"id"`
	Date      string `json:"date" yaml:"date"`
	Equipment string `json:"equipment" yaml:"equipment"`
	Action    string `json:"action" yaml:"action"`
	Notes     string `json:"notes" yaml:"notes"`
}

//Validate validates the given MaintenanceLog
func (l MaintenanceLog) Validate() error {
	if err := ValidateString("id", l.ID, 64); err != nil {
		return err
	}
	if err := ValidateOptionalString("date", l.Date, 64); err != nil {
		return err
	}
	if err := ValidateOptionalString("equipment", l.Equipment, 255); err != nil {
		return err
	}
	if err := ValidateOptionalString("action", l.Action, 255); err != nil {
		return err
	}
	return ValidateOptionalString("notes", l.Notes, 4096)
}

//Field returns the value of the field with the given JSON name
func (l MaintenanceLog) Field(name string) (interface{}, bool) {
	switch name {
	case "id":
		return l.ID, true
	case "date":
		return l.Date, true
	case "equipment":
		return l.Equipment, true
	case "action":
		return l.Action, true
	case "notes":
		return l.Notes, true
	}
	return nil, false
}

//FormatMaintenanceLogs renders logs as one line per entry, the text form used for maintenance summaries
func FormatMaintenanceLogs(logs []MaintenanceLog) string {
	var sb strings.Builder
	for _, l := range logs {
		fmt.Fprintf(&sb, "Log Date: %s, Equipment: %s, Action: %s, Notes: %s\n", l.Date, l.Equipment, l.Action, l.Notes)
	}
	return sb.String()
}
