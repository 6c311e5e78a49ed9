package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name        string  `json:"name" validate:"required,notblank,max=10"`
	Description *string `json:"description" validate:"omitempty,max=5"`
	Ignored     string  `json:"-" validate:"omitempty"`
}

func strPtr(s string) *string { return &s }

func TestValidateAcceptsValidPayload(t *testing.T) {
	v := New()
	err := v.Validate(samplePayload{Name: "ok", Description: strPtr("short")})
	assert.NoError(t, err)
}

func TestValidateMissingField(t *testing.T) {
	v := New()
	err := v.Validate(samplePayload{})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Equal(t, KindMissing, verr.Fields[0].Kind)
}

func TestValidateBlankIsMissing(t *testing.T) {
	v := New()
	err := v.Validate(samplePayload{Name: "   "})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, KindMissing, verr.Fields[0].Kind)
}

func TestValidateTooLong(t *testing.T) {
	v := New()
	err := v.Validate(samplePayload{
		Name:        strings.Repeat("x", 11),
		Description: strPtr("toolong"),
	})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)

	byField := map[string]FieldError{}
	for _, f := range verr.Fields {
		byField[f.Field] = f
	}
	assert.Equal(t, KindTooLong, byField["name"].Kind)
	assert.Equal(t, "10", byField["name"].Limit)
	assert.Equal(t, KindTooLong, byField["description"].Kind)
	assert.Equal(t, "5", byField["description"].Limit)
}

func TestValidateCountsRunesNotBytes(t *testing.T) {
	v := New()
	err := v.Validate(samplePayload{Name: "ççççççççç"})
	assert.NoError(t, err)
}

func TestReferential(t *testing.T) {
	err := Referential("projectId")
	require.Len(t, err.Fields, 1)
	assert.Equal(t, KindReferential, err.Fields[0].Kind)
	assert.Contains(t, err.Error(), "projectId")
}
