package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StringList
	}{
		{"json array", `["go","mongo"]`, StringList{"go", "mongo"}},
		{"array with padding", `[" go ", "", "mongo"]`, StringList{"go", "mongo"}},
		{"comma string", `"go, mongo ,gin"`, StringList{"go", "mongo", "gin"}},
		{"single value", `"go"`, StringList{"go"}},
		{"empty string", `""`, StringList{}},
		{"empty array", `[]`, StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var got StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	user := User{Name: "Ada", Email: "ada@example.com", Password: "hashed"}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hashed")
}
