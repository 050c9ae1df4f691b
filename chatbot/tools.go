package chatbot

import (
	"context"
	"encoding/json"

	"github.com/korylprince/proactiveshield-server/api"
)

// Tool is a named, schema-typed capability the model may call
type Tool interface {
	Name() string
	// Description is shown to the model to decide when to call the tool
	Description() string
	InputSchema() *Schema
	OutputSchema() *Schema
	// Invoke runs the tool. input has already been validated against InputSchema.
	Invoke(ctx context.Context, input json.RawMessage) (interface{}, error)
}

// Tool names
const (
	ToolGetEquipmentHealth    = "getEquipmentHealth"
	ToolGetAnomalyAlerts      = "getAnomalyAlerts"
	ToolGetFailurePredictions = "getFailurePredictions"
	ToolGetMaintenanceLogs    = "getMaintenanceLogs"
)

// Record schemas
var (
	EquipmentSchema = &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"id":          {Type: TypeString},
			"name":        {Type: TypeString},
			"status":      {Type: TypeString, Enum: []string{"Operational", "Warning", "Critical"}},
			"temperature": {Type: TypeNumber, Description: "Temperature in °C"},
			"vibration":   {Type: TypeNumber, Description: "Vibration in g"},
			"pressure":    {Type: TypeNumber, Description: "Pressure in bar"},
		},
		Required: []string{"id", "name", "status", "temperature", "vibration", "pressure"},
	}

	AlertSchema = &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"id":            {Type: TypeString},
			"equipmentId":   {Type: TypeString},
			"equipmentName": {Type: TypeString},
			"message":       {Type: TypeString},
			"severity":      {Type: TypeString, Enum: []string{"Low", "Medium", "High"}},
			"timestamp":     {Type: TypeString},
		},
		Required: []string{"id", "equipmentId", "equipmentName", "message", "severity", "timestamp"},
	}

	FailurePredictionPointSchema = &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"date":        {Type: TypeString},
			"probability": {Type: TypeNumber, Minimum: float(0), Maximum: float(100)},
			"trend":       {Type: TypeNumber, Minimum: float(0), Maximum: float(100)},
		},
		Required: []string{"date", "probability", "trend"},
	}

	MaintenanceLogSchema = &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"id":        {Type: TypeString},
			"date":      {Type: TypeString},
			"equipment": {Type: TypeString},
			"action":    {Type: TypeString},
			"notes":     {Type: TypeString},
		},
		Required: []string{"id", "date", "equipment", "action", "notes"},
	}

	// EmptyObjectSchema is the input schema of tools that take no arguments
	EmptyObjectSchema = &Schema{Type: TypeObject}
)

// storeTool is a zero-argument read over one Store collection
type storeTool struct {
	name        string
	description string
	output      *Schema
	read        func() interface{}
}

func (t *storeTool) Name() string          { return t.name }
func (t *storeTool) Description() string   { return t.description }
func (t *storeTool) InputSchema() *Schema  { return EmptyObjectSchema }
func (t *storeTool) OutputSchema() *Schema { return t.output }

func (t *storeTool) Invoke(ctx context.Context, input json.RawMessage) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.read(), nil
}

// NewTools returns the Data Access Tools reading from store, in a fixed order
func NewTools(store *api.Store) []Tool {
	return []Tool{
		&storeTool{
			name:        ToolGetEquipmentHealth,
			description: "Get the current health status and sensor readings for all equipment.",
			output:      &Schema{Type: TypeArray, Items: EquipmentSchema},
			read:        func() interface{} { return store.Equipment() },
		},
		&storeTool{
			name:        ToolGetAnomalyAlerts,
			description: "Get a list of recent anomaly alerts from equipment.",
			output:      &Schema{Type: TypeArray, Items: AlertSchema},
			read:        func() interface{} { return store.Alerts() },
		},
		&storeTool{
			name:        ToolGetFailurePredictions,
			description: "Get the failure probability predictions for a specific piece of equipment.",
			output:      &Schema{Type: TypeArray, Items: FailurePredictionPointSchema},
			read:        func() interface{} { return store.FailurePredictions() },
		},
		&storeTool{
			name:        ToolGetMaintenanceLogs,
			description: "Get a list of historical maintenance logs.",
			output:      &Schema{Type: TypeArray, Items: MaintenanceLogSchema},
			read:        func() interface{} { return store.MaintenanceLogs() },
		},
	}
}
