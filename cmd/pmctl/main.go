package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/korylprince/proactiveshield-server/api"
	"github.com/korylprince/proactiveshield-server/chatbot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PMCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "pmctl",
		Short:         "ProactiveShield predictive maintenance CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("server", "http://localhost:8080/api", "API base URL")
	root.PersistentFlags().String("api-key", "", "API key for assistant, briefing, and summary endpoints")
	root.PersistentFlags().Bool("json", false, "output JSON")
	_ = v.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("api-key", root.PersistentFlags().Lookup("api-key"))
	_ = v.BindPFlag("json", root.PersistentFlags().Lookup("json"))

	c := func() *client { return newClient(v.GetString("server"), v.GetString("api-key")) }
	asJSON := func() bool { return v.GetBool("json") }

	root.AddCommand(
		listCmd("equipment", "Show equipment health", "/equipment/health", c, asJSON, equipmentTable),
		listCmd("alerts", "Show anomaly alerts", "/alerts", c, asJSON, alertTable),
		listCmd("predictions", "Show the failure prediction series", "/predictions/failure", c, asJSON, predictionTable),
		listCmd("logs", "Show maintenance logs", "/maintenance-logs", c, asJSON, maintenanceTable),
		statsCmd(c, asJSON),
		briefingCmd(c, asJSON),
		summaryCmd(c, asJSON),
		chatCmd(c),
	)
	return root
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

//parseFilters converts key=value pairs to query parameters, e.g. status=Critical or temperature__gt=80
func parseFilters(filters []string) (url.Values, error) {
	params := url.Values{}
	for _, f := range filters {
		k, val, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", f)
		}
		params.Add(k, val)
	}
	return params, nil
}

//listCmd fetches a collection and renders it as a table.
//render decodes the raw JSON itself so one command shape serves every record type.
func listCmd(use, short, path string, c func() *client, asJSON func() bool, render func(io.Writer, json.RawMessage) error) *cobra.Command {
	var filters []string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseFilters(filters)
			if err != nil {
				return err
			}
			var raw json.RawMessage
			if err := c().get(cmd.Context(), path, params, &raw); err != nil {
				return err
			}
			if asJSON() {
				return printJSON(cmd.OutOrStdout(), raw)
			}
			return render(cmd.OutOrStdout(), raw)
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as key=value, repeatable (e.g. status=Critical, temperature__gt=80)")
	return cmd
}

func newTable(w io.Writer, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(header)
	return tw
}

func equipmentTable(w io.Writer, raw json.RawMessage) error {
	var records []api.Equipment
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}
	tw := newTable(w, table.Row{"ID", "Name", "Status", "Temp (°C)", "Vibration (g)", "Pressure (bar)"})
	for _, e := range records {
		tw.AppendRow(table.Row{e.ID, e.Name, e.Status, e.Temperature, e.Vibration, e.Pressure})
	}
	tw.Render()
	return nil
}

func alertTable(w io.Writer, raw json.RawMessage) error {
	var records []api.Alert
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}
	tw := newTable(w, table.Row{"ID", "Equipment", "Severity", "Message", "Timestamp"})
	for _, a := range records {
		tw.AppendRow(table.Row{a.ID, fmt.Sprintf("%s (%s)", a.EquipmentName, a.EquipmentID), a.Severity, a.Message, a.Timestamp})
	}
	tw.Render()
	return nil
}

func predictionTable(w io.Writer, raw json.RawMessage) error {
	var records []api.FailurePredictionPoint
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}
	tw := newTable(w, table.Row{"Date", "Probability (%)", "Trend (%)"})
	for _, p := range records {
		tw.AppendRow(table.Row{p.Date, p.Probability, p.Trend})
	}
	tw.Render()
	return nil
}

func maintenanceTable(w io.Writer, raw json.RawMessage) error {
	var records []api.MaintenanceLog
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}
	tw := newTable(w, table.Row{"ID", "Date", "Equipment", "Action", "Notes"})
	for _, l := range records {
		tw.AppendRow(table.Row{l.ID, l.Date, l.Equipment, l.Action, l.Notes})
	}
	tw.Render()
	return nil
}

func statsCmd(c func() *client, asJSON func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard summary counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats api.Stats
			if err := c().get(cmd.Context(), "/stats", nil, &stats); err != nil {
				return err
			}
			if asJSON() {
				return printJSON(cmd.OutOrStdout(), &stats)
			}

			tw := newTable(cmd.OutOrStdout(), table.Row{"Metric", "Value"})
			tw.AppendRow(table.Row{"Equipment", stats.EquipmentCount})
			for _, s := range stats.Statuses {
				tw.AppendRow(table.Row{"  " + string(s.Status), s.Count})
			}
			tw.AppendRow(table.Row{"Alerts", stats.AlertCount})
			for _, s := range stats.Severities {
				tw.AppendRow(table.Row{"  " + string(s.Severity), s.Count})
			}
			tw.AppendRow(table.Row{"Maintenance logs", stats.MaintenanceLogCount})
			if p := stats.LatestPrediction; p != nil {
				tw.AppendRow(table.Row{"Failure probability (" + p.Date + ")", fmt.Sprintf("%v%%", p.Probability)})
			}
			tw.Render()
			return nil
		},
	}
}

func briefingCmd(c func() *client, asJSON func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "briefing",
		Short: "Generate the daily briefing",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out chatbot.BriefingOutput
			if err := c().post(cmd.Context(), "/briefing/daily", struct{}{}, &out); err != nil {
				return err
			}
			if asJSON() {
				return printJSON(cmd.OutOrStdout(), &out)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out.Briefing)
			return err
		},
	}
}

func summaryCmd(c func() *client, asJSON func() bool) *cobra.Command {
	var predictionsFile, logsFile string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize probable maintenance requirements",
		Long:  "Summarize probable maintenance requirements. Inputs not given as files are taken from the server defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := c()
			var in chatbot.SummaryInput
			if predictionsFile == "" || logsFile == "" {
				var defaults api.SummaryDefaults
				if err := cli.get(cmd.Context(), "/maintenance/summary/defaults", nil, &defaults); err != nil {
					return err
				}
				in.FailurePredictions, in.MaintenanceLogs = defaults.FailurePredictions, defaults.MaintenanceLogs
			}
			if predictionsFile != "" {
				b, err := os.ReadFile(predictionsFile)
				if err != nil {
					return err
				}
				in.FailurePredictions = string(b)
			}
			if logsFile != "" {
				b, err := os.ReadFile(logsFile)
				if err != nil {
					return err
				}
				in.MaintenanceLogs = string(b)
			}

			var out chatbot.SummaryOutput
			if err := cli.post(cmd.Context(), "/maintenance/summary", &in, &out); err != nil {
				return err
			}
			if asJSON() {
				return printJSON(cmd.OutOrStdout(), &out)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out.Summary)
			return err
		},
	}
	cmd.Flags().StringVar(&predictionsFile, "predictions-file", "", "file with failure prediction text")
	cmd.Flags().StringVar(&logsFile, "logs-file", "", "file with maintenance log text")
	return cmd
}

func chatCmd(c func() *client) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the maintenance assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), c(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
