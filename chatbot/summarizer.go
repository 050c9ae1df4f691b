package chatbot

import (
	"strings"
	"text/template"

	"github.com/korylprince/proactiveshield-server/api"
)

// SummaryInput is the input of the maintenance summary flow. Both fields are opaque text.
type SummaryInput struct {
	FailurePredictions string `json:"failurePredictions"`
	MaintenanceLogs    string `json:"maintenanceLogs"`
}

// SummaryOutput is the output of the maintenance summary flow
type SummaryOutput struct {
	Summary string `json:"summary"`
}

// maxSummaryInput bounds each summary text blob
const maxSummaryInput = 64 * 1024

// Validate validates the given SummaryInput
func (in *SummaryInput) Validate() error {
	if err := api.ValidateOptionalString("failurePredictions", in.FailurePredictions, maxSummaryInput); err != nil {
		return err
	}
	return api.ValidateOptionalString("maintenanceLogs", in.MaintenanceLogs, maxSummaryInput)
}

var summaryTemplate = template.Must(template.New("summary").Parse(
	"You are a maintenance manager. Based on the failure predictions and maintenance logs, generate a summary of probable maintenance requirements.\n\n" +
		"Failure Predictions: {{.FailurePredictions}}\n\n" +
		"Maintenance Logs: {{.MaintenanceLogs}}"))

// RenderSummaryPrompt returns the literal prompt for the maintenance summary flow.
// Inputs are substituted verbatim.
func RenderSummaryPrompt(in SummaryInput) string {
	var sb strings.Builder
	// executing a parsed template with string fields into a strings.Builder cannot fail
	_ = summaryTemplate.Execute(&sb, in)
	return sb.String()
}
