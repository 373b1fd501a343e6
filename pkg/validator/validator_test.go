package validator

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewForm struct {
	Professor  string `validate:"required"`
	Usefulness int    `validate:"required,min=1,max=5"`
	Difficulty int    `validate:"required,min=1,max=5"`
	Rating     int    `validate:"required,min=1,max=5"`
	Comment    string
}

func TestValidate_AllFieldsPresent(t *testing.T) {
	form := reviewForm{Professor: "J. Doe", Usefulness: 5, Difficulty: 3, Rating: 4}
	assert.NoError(t, Validate(form))
}

func TestValidate_CommentOptional(t *testing.T) {
	form := reviewForm{Professor: "J. Doe", Usefulness: 1, Difficulty: 1, Rating: 1, Comment: ""}
	assert.NoError(t, Validate(form))
}

func TestValidate_MissingProfessor(t *testing.T) {
	form := reviewForm{Usefulness: 5, Difficulty: 3, Rating: 4}
	err := Validate(form)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Professor")
	assert.Equal(t, "is required", fields["Professor"])
}

func TestValidate_UnselectedRating(t *testing.T) {
	// The zero value is the "unselected" sentinel and must be rejected.
	form := reviewForm{Professor: "J. Doe", Usefulness: 5, Difficulty: 3}
	err := Validate(form)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "Rating")
}

func TestValidate_OutOfRangeRating(t *testing.T) {
	form := reviewForm{Professor: "J. Doe", Usefulness: 6, Difficulty: 3, Rating: 4}
	err := Validate(form)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Usefulness"], "5")
}

func TestValidate_MultipleMissingFields(t *testing.T) {
	err := Validate(reviewForm{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Len(t, fields, 4)
}

func TestDecodeAndValidate_Success(t *testing.T) {
	body := bytes.NewBufferString(`{"Professor":"J. Doe","Usefulness":5,"Difficulty":3,"Rating":4}`)
	r := httptest.NewRequest("POST", "/reviews", body)

	var form reviewForm
	require.NoError(t, DecodeAndValidate(r, &form))
	assert.Equal(t, "J. Doe", form.Professor)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/reviews", bytes.NewBufferString(`{"Professor":`))

	var form reviewForm
	err := DecodeAndValidate(r, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
