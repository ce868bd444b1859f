package storage

import (
	"testing"

	"github.com/poiesic/cilin/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)},
		{"content-based ID", core.IDFromContent("Aa01A01= 人 士 人物\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.Len(t, data, core.IDMUS.Size(tt.id))

			got, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, got)
		})
	}
}

func TestUnmarshalIDTruncated(t *testing.T) {
	_, err := UnmarshalID(nil)
	assert.ErrorIs(t, err, ErrTruncatedData)

	data := MarshalID(core.ID(18446744073709551615))
	_, err = UnmarshalID(data[:3])
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestMarshalUnmarshalEntry(t *testing.T) {
	entry := core.Entry{Code: "Aa01A01=", Words: []string{"人", "士", "人物"}}

	got, err := UnmarshalEntry(entry.Code, MarshalEntry(entry))
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestUnmarshalEntryErrors(t *testing.T) {
	valid := MarshalEntry(core.Entry{Code: "Aa01A01=", Words: []string{"人", "人物"}})

	tests := []struct {
		name    string
		code    core.Code
		data    []byte
		wantErr error
	}{
		{"no words", "Aa01A01=", MarshalEntry(core.Entry{Code: "Aa01A01="}), ErrSerializationFailed},
		{"truncated", "Aa01A01=", valid[:len(valid)-2], ErrTruncatedData},
		{"empty value", "Aa01A01=", nil, ErrTruncatedData},
		{"bad code", "bad", valid, core.ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalEntry(tt.code, tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
