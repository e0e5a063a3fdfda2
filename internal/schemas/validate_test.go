package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name":"Ada","age":36}`))
}

func TestValidateJSONString_MissingField(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"age":3}`)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "(root)", verr.Errors[0].Field)
	assert.Contains(t, verr.Error(), "validation failed")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"name":"Ada","age":"old"}`)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age", verr.Errors[0].Field)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)

	var lerr *SchemaLoadError
	assert.ErrorAs(t, err, &lerr)
}

func TestCompile(t *testing.T) {
	s, err := Compile("person", personSchema)
	require.NoError(t, err)

	assert.NoError(t, s.Validate([]byte(`{"name":"Ada"}`)))

	err = s.Validate([]byte(`{"name":1}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Summary(), "name")
}

func TestCompile_MalformedDocument(t *testing.T) {
	s, err := Compile("person", personSchema)
	require.NoError(t, err)

	err = s.Validate([]byte(`{"name":`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "(root)", verr.Errors[0].Field)
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken", `{"type": 12}`)

	var lerr *SchemaLoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "broken", lerr.Path)
}
