package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m, err := NewManager("secret", "wave-backend", time.Hour)
	require.NoError(t, err)

	tok, err := m.Generate("p1", RolePartner)
	require.NoError(t, err)

	claims, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "p1", claims.Subject)
	assert.Equal(t, RolePartner, claims.Role)
	assert.Equal(t, "wave-backend", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m1, _ := NewManager("secret-a", "wave-backend", time.Hour)
	m2, _ := NewManager("secret-b", "wave-backend", time.Hour)

	tok, err := m1.Generate("p1", RolePartner)
	require.NoError(t, err)

	_, err = m2.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	m, _ := NewManager("secret", "wave-backend", -time.Minute)

	tok, err := m.Generate("p1", RoleUser)
	require.NoError(t, err)

	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("", "wave-backend", time.Hour)
	assert.Error(t, err)
}
