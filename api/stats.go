package api

//StatsStatus represents Equipment Status Stats
type StatsStatus struct {
	Status EquipmentStatus `json:"status"`
	Count  int             `json:"count"`
}

//StatsSeverity represents Alert Severity Stats
type StatsSeverity struct {
	Severity Severity `json:"severity"`
	Count    int      `json:"count"`
}

//Stats represents dashboard summary statistics
type Stats struct {
	Statuses            []*StatsStatus          `json:"statuses"`
	Severities          []*StatsSeverity        `json:"severities"`
	EquipmentCount      int                     `json:"equipmentCount"`
	AlertCount          int                     `json:"alertCount"`
	MaintenanceLogCount int                     `json:"maintenanceLogCount"`
	LatestPrediction    *FailurePredictionPoint `json:"latestPrediction,omitempty"`
}

//Stats returns Stats computed from the Store. Every known status and severity is listed, including zero counts.
func (s *Store) Stats() *Stats {
	st := &Stats{
		EquipmentCount:      len(s.equipment),
		AlertCount:          len(s.alerts),
		MaintenanceLogCount: len(s.logs),
	}

	for _, status := range EquipmentStatuses {
		c := &StatsStatus{Status: status}
		for _, e := range s.equipment {
			if e.Status == status {
				c.Count++
			}
		}
		st.Statuses = append(st.Statuses, c)
	}

	for _, severity := range Severities {
		c := &StatsSeverity{Severity: severity}
		for _, a := range s.alerts {
			if a.Severity == severity {
				c.Count++
			}
		}
		st.Severities = append(st.Severities, c)
	}

	if n := len(s.predictions); n > 0 {
		p := s.predictions[n-1]
		st.LatestPrediction = &p
	}

	return st
}
