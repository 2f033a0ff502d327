package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChangeEvent(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid envelope",
			data: `{"path":"usuarios/T1/chat/M1","after":{"idFrom":"T1","idTo":"A1","type":0,"content":"Oi"}}`,
		},
		{
			name:    "not json",
			data:    `{{{`,
			wantErr: true,
		},
		{
			name:    "missing path",
			data:    `{"after":{"idFrom":"T1"}}`,
			wantErr: true,
		},
		{
			name:    "missing after-state",
			data:    `{"path":"chat/M1"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseChangeEvent([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, ev.Path)
		})
	}
}

func TestChangeEvent_AfterMessage_Defaults(t *testing.T) {
	ev, err := ParseChangeEvent([]byte(`{"path":"usuarios/T1/chat/M1","after":{"idFrom":"T1","type":2}}`))
	require.NoError(t, err)

	msg, err := ev.AfterMessage()
	require.NoError(t, err)

	assert.Equal(t, "T1", msg.IDFrom)
	assert.Equal(t, MessageAudio, msg.Type)
	assert.Empty(t, msg.IDTo, "absent idTo decodes to empty")
	assert.Empty(t, msg.TransferID)
	assert.Empty(t, msg.AgentID)
}

func TestChangeEvent_BeforeMessage_Missing(t *testing.T) {
	ev, err := ParseChangeEvent([]byte(`{"path":"chat/M1","after":{}}`))
	require.NoError(t, err)

	_, err = ev.BeforeMessage()
	assert.Error(t, err)
}

func TestChangeEvent_TenantID(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
		wantErr  bool
	}{
		{name: "chat sub-collection path", path: "usuarios/T1/chat/M1", expected: "T1"},
		{name: "shared chat path", path: "chat/M1", wantErr: true},
		{name: "wrong collection", path: "lojas/T1/chat/M1", wantErr: true},
		{name: "empty tenant segment", path: "usuarios//chat/M1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &ChangeEvent{Path: tt.path}
			tenant, err := ev.TenantID()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tenant)
		})
	}
}
