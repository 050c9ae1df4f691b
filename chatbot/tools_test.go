package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/korylprince/proactiveshield-server/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *api.Store {
	t.Helper()
	s, err := api.NewStore(api.DefaultFixtures())
	require.NoError(t, err)
	return s
}

func TestNewToolsOrder(t *testing.T) {
	tools := NewTools(testStore(t))
	require.Len(t, tools, 4)

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name()
		assert.NotEmpty(t, tool.Description())
		assert.Equal(t, EmptyObjectSchema, tool.InputSchema())
	}
	assert.Equal(t, []string{ToolGetEquipmentHealth, ToolGetAnomalyAlerts, ToolGetFailurePredictions, ToolGetMaintenanceLogs}, names)
}

func TestToolsReturnFullCollections(t *testing.T) {
	store := testStore(t)
	executor := NewToolExecutor(NewTools(store))
	ctx := context.Background()

	expected := map[string]interface{}{
		ToolGetEquipmentHealth:    store.Equipment(),
		ToolGetAnomalyAlerts:      store.Alerts(),
		ToolGetFailurePredictions: store.FailurePredictions(),
		ToolGetMaintenanceLogs:    store.MaintenanceLogs(),
	}

	for _, tool := range NewTools(store) {
		t.Run(tool.Name(), func(t *testing.T) {
			first, err := executor.Execute(ctx, tool.Name(), nil)
			require.NoError(t, err)
			second, err := executor.Execute(ctx, tool.Name(), json.RawMessage(`{}`))
			require.NoError(t, err)
			assert.Equal(t, first, second)

			want, err := json.Marshal(expected[tool.Name()])
			require.NoError(t, err)
			assert.JSONEq(t, string(want), first)

			assert.NoError(t, tool.OutputSchema().ValidateJSON([]byte(first)))
		})
	}
}

func TestToolsIgnoreUnknownArguments(t *testing.T) {
	executor := NewToolExecutor(NewTools(testStore(t)))
	out, err := executor.Execute(context.Background(), ToolGetAnomalyAlerts, json.RawMessage(`{"equipmentId":"EQP-003"}`))
	require.NoError(t, err)

	var alerts []api.Alert
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	assert.Len(t, alerts, 4)
}

func TestExecuteErrors(t *testing.T) {
	executor := NewToolExecutor(NewTools(testStore(t)))

	_, err := executor.Execute(context.Background(), "deleteEverything", nil)
	assert.True(t, IsKind(err, ErrorKindToolExecution))
	assert.True(t, errors.Is(err, ErrUnknownTool))

	_, err = executor.Execute(context.Background(), ToolGetMaintenanceLogs, json.RawMessage(`[1]`))
	assert.True(t, IsKind(err, ErrorKindToolExecution))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = executor.Execute(ctx, ToolGetMaintenanceLogs, nil)
	assert.True(t, IsKind(err, ErrorKindToolExecution))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestExecuteAllKeepsOrder(t *testing.T) {
	executor := NewToolExecutor(NewTools(testStore(t)))
	calls := []ToolCall{
		{ID: "a", Name: ToolGetMaintenanceLogs},
		{ID: "b", Name: "missing"},
		{ID: "c", Name: ToolGetEquipmentHealth},
	}

	results := executor.ExecuteAll(context.Background(), calls)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, calls[i].ID, r.ID)
		assert.Equal(t, calls[i].Name, r.Name)
		assert.True(t, json.Valid([]byte(r.Content)))
	}
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Contains(t, results[1].Content, `"error"`)
	assert.NoError(t, results[2].Err)
}

func TestToolsConcurrentReads(t *testing.T) {
	executor := NewToolExecutor(NewTools(testStore(t)))
	want, err := executor.Execute(context.Background(), ToolGetEquipmentHealth, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := executor.Execute(context.Background(), ToolGetEquipmentHealth, nil)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
