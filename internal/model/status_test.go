package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMarshalsAsName(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusTodo, `"Todo"`},
		{StatusInProgress, `"InProgress"`},
		{StatusDone, `"Done"`},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			got, err := json.Marshal(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestStatusMarshalRejectsUnknown(t *testing.T) {
	_, err := json.Marshal(Status(7))
	assert.Error(t, err)
}

func TestStatusUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Status
		wantErr bool
	}{
		{"name", `"InProgress"`, StatusInProgress, false},
		{"lowercase name", `"done"`, StatusDone, false},
		{"number", `2`, StatusDone, false},
		{"numeric string", `"1"`, StatusInProgress, false},
		{"unknown name", `"Blocked"`, 0, true},
		{"out of range", `5`, 0, true},
		{"wrong type", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Status
			err := json.Unmarshal([]byte(tt.input), &s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestTaskJSONShape(t *testing.T) {
	task := NewTask(3, "T1")
	data, err := json.Marshal(task)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "Todo", got["status"])
	assert.Equal(t, float64(3), got["projectId"])
	assert.Contains(t, got, "createdAt")
	assert.Contains(t, got, "updatedAt")
	assert.Nil(t, got["notes"])
	assert.Nil(t, got["dueDate"])
	assert.Equal(t, false, got["isDeleted"])
}
