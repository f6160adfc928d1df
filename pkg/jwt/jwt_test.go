package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const secret = "jwt-test-secret"

func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "c-1", "bodeguero", "tienda-api", 5)
	require.NoError(t, err)

	userID, companyID, role, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "c-1", companyID)
	assert.Equal(t, "bodeguero", role)
}

func TestParse_Rechazos(t *testing.T) {
	expired, err := pkgjwt.Generate(secret, "u-1", "c-1", "admin", "tienda-api", -1)
	require.NoError(t, err)
	valid, err := pkgjwt.Generate(secret, "u-1", "c-1", "admin", "tienda-api", 5)
	require.NoError(t, err)
	noExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, pkgjwt.Claims{UserID: "u-1", Role: "admin"}).
		SignedString([]byte(secret))
	require.NoError(t, err)
	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u-1",
		Role:             "admin",
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := []struct {
		name, secret, token string
	}{
		{"expirado", secret, expired},
		{"otro secret", "otro-secret", valid},
		{"sin expiración", secret, noExp},
		{"alg none", secret, unsigned},
		{"malformado", secret, "token.invalido.aqui"},
		{"secret vacío", "", valid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := pkgjwt.Parse(tc.secret, tc.token)
			assert.Error(t, err)
		})
	}
}

func TestParseClaims_SubjectComoUserID(t *testing.T) {
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "u-9",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "vendedor",
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	c, err := pkgjwt.ParseClaims(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-9", c.UserID)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "c-1", "admin", "tienda-api", 5)
	assert.Error(t, err)
}
