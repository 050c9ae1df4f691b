package api

import (
	"context"
	"database/sql"
)

//LoadFixturesSQL reads Fixtures from the equipment, alert, failure_prediction and maintenance_log tables.
//Queries use only portable SQL so any database/sql driver works.
func LoadFixturesSQL(ctx context.Context, db *sql.DB) (*Fixtures, error) {
	f := new(Fixtures)

	rows, err := db.QueryContext(ctx, "SELECT id, name, status, temperature, vibration, pressure FROM equipment ORDER BY id;")
	if err != nil {
		return nil, serverError("Could not query equipment", err)
	}
	for rows.Next() {
		var e Equipment
		if err = rows.Scan(&(e.ID), &(e.Name), &(e.Status), &(e.Temperature), &(e.Vibration), &(e.Pressure)); err != nil {
			rows.Close()
			return nil, serverError("Could not scan equipment row", err)
		}
		f.Equipment = append(f.Equipment, e)
	}
	if err = closeRows(rows); err != nil {
		return nil, serverError("Could not read equipment rows", err)
	}

	rows, err = db.QueryContext(ctx, "SELECT id, equipment_id, equipment_name, message, severity, timestamp FROM alert ORDER BY id;")
	if err != nil {
		return nil, serverError("Could not query alerts", err)
	}
	for rows.Next() {
		var a Alert
		if err = rows.Scan(&(a.ID), &(a.EquipmentID), &(a.EquipmentName), &(a.Message), &(a.Severity), &(a.Timestamp)); err != nil {
			rows.Close()
			return nil, serverError("Could not scan alert row", err)
		}
		f.Alerts = append(f.Alerts, a)
	}
	if err = closeRows(rows); err != nil {
		return nil, serverError("Could not read alert rows", err)
	}

	rows, err = db.QueryContext(ctx, "SELECT date, probability, trend FROM failure_prediction ORDER BY seq;")
	if err != nil {
		return nil, serverError("Could not query failure predictions", err)
	}
	for rows.Next() {
		var p FailurePredictionPoint
		if err = rows.Scan(&(p.Date), &(p.Probability), &(p.Trend)); err != nil {
			rows.Close()
			return nil, serverError("Could not scan failure prediction row", err)
		}
		f.FailurePredictions = append(f.FailurePredictions, p)
	}
	if err = closeRows(rows); err != nil {
		return nil, serverError("Could not read failure prediction rows", err)
	}

	rows, err = db.QueryContext(ctx, "SELECT id, date, equipment, action, notes FROM maintenance_log ORDER BY date, id;")
	if err != nil {
		return nil, serverError("Could not query maintenance logs", err)
	}
	for rows.Next() {
		var l MaintenanceLog
		if err = rows.Scan(&(l.ID), &(l.Date), &(l.Equipment), &(l.Action), &(l.Notes)); err != nil {
			rows.Close()
			return nil, serverError("Could not scan maintenance log row", err)
		}
		f.MaintenanceLogs = append(f.MaintenanceLogs, l)
	}
	if err = closeRows(rows); err != nil {
		return nil, serverError("Could not read maintenance log rows", err)
	}

	return f, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
