package model

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func validUser() User {
	return User{
		ID:       "U1",
		FullName: "Nguyễn Văn A",
		Email:    "a@example.com",
		Password: "password",
		Role:     RoleUser,
	}
}

func TestUserMarshalJSON(t *testing.T) {
	user := validUser()

	actual, err := json.Marshal(user)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(actual, &decoded))
	assert.Equal(t, "***", decoded["password"])
	assert.Equal(t, "a@example.com", decoded["email"])
	assert.NotContains(t, decoded, "phone")
	assert.EqualValues(t, "password", user.Password)
}

func TestUserMarshalZerologObject(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)

	logger.Info().Object("user", validUser()).Msg("")

	assert.NotContains(t, buf.String(), `"password":"password"`)
	assert.Contains(t, buf.String(), `"password":"***"`)
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(u *User)
		expectedErr error
		expectErr   bool
	}{
		{name: "given valid user should pass", modify: func(u *User) {}},
		{name: "given admin should pass", modify: func(u *User) { u.Role = RoleAdmin }},
		{name: "given unknown role should fail", modify: func(u *User) { u.Role = "owner" }, expectedErr: inErrors.ErrInvalidRole},
		{name: "given malformed email should fail", modify: func(u *User) { u.Email = "not-an-email" }, expectErr: true},
		{name: "given malformed website should fail", modify: func(u *User) { u.Website = "::" }, expectErr: true},
		{name: "given missing full name should fail", modify: func(u *User) { u.FullName = "" }, expectErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			user := validUser()
			test.modify(&user)

			err := user.Validate()
			switch {
			case test.expectedErr != nil:
				assert.ErrorIs(t, err, test.expectedErr)
			case test.expectErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	user := validUser()
	require.NoError(t, user.HashPassword())

	assert.NotEqual(t, "password", user.Password)
	assert.True(t, user.ComparePassword("password"))
	assert.False(t, user.ComparePassword("wrong"))
}
