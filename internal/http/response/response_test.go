package response

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKAndError(t *testing.T) {
	ok := OK()
	assert.Equal(t, StatusOK, ok.Status)
	assert.Empty(t, ok.Error)
	assert.Nil(t, ok.Data)

	withData := OKWithData(map[string]any{"key": "value"})
	assert.Equal(t, StatusOK, withData.Status)
	assert.NotNil(t, withData.Data)

	errResp := Error("something broke")
	assert.Equal(t, StatusError, errResp.Status)
	assert.Equal(t, "something broke", errResp.Error)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Phone     string `validate:"required,e164"`
		Email     string `validate:"required,email"`
		Gender    string `validate:"required,oneof=M F"`
		BirthDate string `validate:"required,datetime=02-01-2006"`
	}

	v := validator.New()
	err := v.Struct(form{
		Phone:     "not-a-phone",
		Email:     "not-an-email",
		Gender:    "X",
		BirthDate: "2021-03-05",
	})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Phone must be a phone number")
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Gender has an unsupported value")
	assert.Contains(t, resp.Error, "field BirthDate can contain only date in format 02-01-2006")
}

func TestValidationError_Required(t *testing.T) {
	type form struct {
		LastName string `validate:"required"`
	}

	v := validator.New()
	err := v.Struct(form{})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, resp.Error, "field LastName is a required field")
}
