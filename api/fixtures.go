package api

//DefaultFixtures returns the built-in demonstration data set
func DefaultFixtures() *Fixtures {
	return &Fixtures{
		Equipment: []Equipment{
			{ID: "EQP-001", Name: "CNC Machine", Status: StatusOperational, Temperature: 45, Vibration: 0.2, Pressure: 150},
			{ID: "EQP-002", Name: "Welding Robot", Status: StatusWarning, Temperature: 78, Vibration: 1.5, Pressure: 210},
			{ID: "EQP-003", Name: "Assembly Line Motor", Status: StatusCritical, Temperature: 95, Vibration: 3.1, Pressure: 120},
			{ID: "EQP-004", Name: "Hydraulic Press", Status: StatusOperational, Temperature: 52, Vibration: 0.4, Pressure: 300},
		},
		Alerts: []Alert{
			{ID: "ALT-001", EquipmentID: "EQP-003", EquipmentName: "Assembly Line Motor", Message: "Vibration spike detected", Severity: SeverityHigh, Timestamp: "2023-09-15 10:30:00"},
			{ID: "ALT-002", EquipmentID: "EQP-002", EquipmentName: "Welding Robot", Message: "Temperature exceeding threshold", Severity: SeverityMedium, Timestamp: "2023-09-15 09:15:00"},
			{ID: "ALT-003", EquipmentID: "EQP-004", EquipmentName: "Hydraulic Press", Message: "Minor pressure fluctuation", Severity: SeverityLow, Timestamp: "2023-09-14 18:00:00"},
			{ID: "ALT-004", EquipmentID: "EQP-002", EquipmentName: "Welding Robot", Message: "Unusual vibration pattern", Severity: SeverityMedium, Timestamp: "2023-09-14 14:20:00"},
		},
		FailurePredictions: []FailurePredictionPoint{
			{Date: "Day -6", Probability: 12, Trend: 10},
			{Date: "Day -5", Probability: 15, Trend: 12},
			{Date: "Day -4", Probability: 20, Trend: 16},
			{Date: "Day -3", Probability: 28, Trend: 25},
			{Date: "Day -2", Probability: 45, Trend: 40},
			{Date: "Day -1", Probability: 60, Trend: 58},
			{Date: "Today", Probability: 85, Trend: 82},
		},
		MaintenanceLogs: []MaintenanceLog{
			{ID: "LOG-001", Date: "2023-08-01", Equipment: "EQP-001", Action: "Routine check", Notes: "All systems nominal."},
			{ID: "LOG-002", Date: "2023-08-05", Equipment: "EQP-003", Action: "Replaced bearing", Notes: "Excessive wear detected on bearing B-45."},
			{ID: "LOG-003", Date: "2023-08-12", Equipment: "EQP-002", Action: "Coolant flush", Notes: "Coolant levels were low."},
			{ID: "LOG-004", Date: "2023-08-20", Equipment: "EQP-004", Action: "Hydraulic fluid top-up", Notes: "Minor leak detected and patched at joint H-2."},
			{ID: "LOG-005", Date: "2023-09-01", Equipment: "EQP-001", Action: "Routine check", Notes: "All systems nominal."},
		},
	}
}

//SummaryDefaults is the pair of free-text blobs used to prefill the maintenance summary form
type SummaryDefaults struct {
	FailurePredictions string `json:"failurePredictions"`
	MaintenanceLogs    string `json:"maintenanceLogs"`
}

//DefaultSummaryInput returns the built-in SummaryDefaults
func DefaultSummaryInput() *SummaryDefaults {
	return &SummaryDefaults{
		FailurePredictions: `Prediction for EQP-002 (Welding Robot): High probability of overheating within 5 days due to sustained high-temperature readings.
Prediction for EQP-003 (Assembly Line Motor): 85% probability of motor failure within 7 days based on increasing vibration patterns.
Prediction for EQP-001 (CNC Machine): Low failure probability. Current operational parameters are stable.
`,
		MaintenanceLogs: FormatMaintenanceLogs(DefaultFixtures().MaintenanceLogs),
	}
}
