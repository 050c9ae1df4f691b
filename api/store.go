package api

import "fmt"

//Fixtures is the raw content of the Domain Data Store
type Fixtures struct {
	Equipment          []Equipment              `json:"equipment" yaml:"equipment"`
	Alerts             []Alert                  `json:"alerts" yaml:"alerts"`
	FailurePredictions []FailurePredictionPoint `json:"failurePredictions" yaml:"failurePredictions"`
	MaintenanceLogs    []MaintenanceLog         `json:"maintenanceLogs" yaml:"maintenanceLogs"`
}

//Store is the read-only, in-memory Domain Data Store.
//It is immutable after NewStore returns, so it is safe for concurrent use without locking.
//Every getter returns a fresh copy.
type Store struct {
	equipment   []Equipment
	alerts      []Alert
	predictions []FailurePredictionPoint
	logs        []MaintenanceLog
}

//NewStore validates f and returns a Store holding a private copy of it, or an error if validation failed
func NewStore(f *Fixtures) (*Store, error) {
	if f == nil {
		f = &Fixtures{}
	}

	ids := make(map[string]struct{})
	for i, e := range f.Equipment {
		if err := e.Validate(); err != nil {
			return nil, userError(fmt.Sprintf("Could not validate equipment[%d]", i), err)
		}
		if _, ok := ids[e.ID]; ok {
			return nil, userError("Could not validate equipment", fmt.Errorf("duplicate id %q", e.ID))
		}
		ids[e.ID] = struct{}{}
	}

	ids = make(map[string]struct{})
	for i, a := range f.Alerts {
		if err := a.Validate(); err != nil {
			return nil, userError(fmt.Sprintf("Could not validate alerts[%d]", i), err)
		}
		if _, ok := ids[a.ID]; ok {
			return nil, userError("Could not validate alerts", fmt.Errorf("duplicate id %q", a.ID))
		}
		ids[a.ID] = struct{}{}
	}

	for i, p := range f.FailurePredictions {
		if err := p.Validate(); err != nil {
			return nil, userError(fmt.Sprintf("Could not validate failurePredictions[%d]", i), err)
		}
	}

	ids = make(map[string]struct{})
	for i, l := range f.MaintenanceLogs {
		if err := l.Validate(); err != nil {
			return nil, userError(fmt.Sprintf("Could not validate maintenanceLogs[%d]", i), err)
		}
		if _, ok := ids[l.ID]; ok {
			return nil, userError("Could not validate maintenanceLogs", fmt.Errorf("duplicate id %q", l.ID))
		}
		ids[l.ID] = struct{}{}
	}

	return &Store{
		equipment:   append([]Equipment{}, f.Equipment...),
		alerts:      append([]Alert{}, f.Alerts...),
		predictions: append([]FailurePredictionPoint{}, f.FailurePredictions...),
		logs:        append([]MaintenanceLog{}, f.MaintenanceLogs...),
	}, nil
}

//Equipment returns the equipment collection
func (s *Store) Equipment() []Equipment {
	return append([]Equipment{}, s.equipment...)
}

//Alerts returns the anomaly alert collection
func (s *Store) Alerts() []Alert {
	return append([]Alert{}, s.alerts...)
}

//FailurePredictions returns the failure prediction series, oldest first
func (s *Store) FailurePredictions() []FailurePredictionPoint {
	return append([]FailurePredictionPoint{}, s.predictions...)
}

//MaintenanceLogs returns the maintenance log collection
func (s *Store) MaintenanceLogs() []MaintenanceLog {
	return append([]MaintenanceLog{}, s.logs...)
}

//Orphans returns alerts whose EquipmentID does not reference any Equipment
func (s *Store) Orphans() []Alert {
	known := make(map[string]struct{}, len(s.equipment))
	for _, e := range s.equipment {
		known[e.ID] = struct{}{}
	}

	var orphans []Alert
	for _, a := range s.alerts {
		if _, ok := known[a.EquipmentID]; !ok {
			orphans = append(orphans, a)
		}
	}
	return orphans
}
