package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-app/internal/types"
)

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		student types.Student
		want    map[string]string
	}{
		{
			name:    "valid",
			student: types.Student{Name: "Alice", Email: "alice@x.com"},
		},
		{
			name:    "empty name and malformed email",
			student: types.Student{Name: "", Email: "bad"},
			want: map[string]string{
				"name":  "name is required",
				"email": "email must be a valid email address",
			},
		},
		{
			name:    "blank name",
			student: types.Student{Name: "   ", Email: "alice@x.com"},
			want:    map[string]string{"name": "name is required"},
		},
		{
			name:    "missing email",
			student: types.Student{Name: "Alice"},
			want:    map[string]string{"email": "email is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.student)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, Fields(err))
		})
	}
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Nil(t, Fields(errors.New("boom")))
}
