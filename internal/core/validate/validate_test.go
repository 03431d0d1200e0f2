package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/chiclet/internal/core/identity"
)

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Apple", false},
		{"valid with spaces", "Red Apple", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "NotBlank(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"host key", "apple", false},
		{"derived hash", "a1b2c3d4e5f60718", false},
		{"inner space", "new york", false},
		{"empty", "", true},
		{"leading space", " apple", true},
		{"trailing newline", "apple\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := IdentityKey(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "IdentityKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestEach(t *testing.T) {
	assert.NoError(t, Each("labels", []string{"a", "b"}, NotBlank))
	assert.NoError(t, Each("labels", nil, NotBlank))

	err := Each("labels", []string{"a", "", " "}, NotBlank)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "labels[1]", fieldErrs[0].Field)
	assert.Equal(t, "labels[2]", fieldErrs[1].Field)
}

func TestIdentities(t *testing.T) {
	assert.NoError(t, Identities("ids", []identity.ID{"apple", "fig"}))

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, Identities("ids", []identity.ID{"apple", ""}), &fieldErrs)
	assert.Equal(t, "ids[1]", fieldErrs[0].Field)
}
