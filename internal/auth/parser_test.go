package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgewood/estimates/internal/model"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParse(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()
	token := signToken(t, "secret", jwt.MapClaims{
		"user_id": userID.String(),
		"org_id":  orgID.String(),
		"role":    "estimator",
	})

	principal, err := NewParser("secret").Parse(token)
	require.NoError(t, err)

	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, orgID, principal.OrgID)
	assert.Equal(t, model.RoleEstimator, principal.Role, "role is normalized to upper case")
}

func TestParseRejectsBadTokens(t *testing.T) {
	userID := uuid.New().String()
	orgID := uuid.New().String()

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signToken(t, "other", jwt.MapClaims{"user_id": userID, "org_id": orgID, "role": "ADMIN"})},
		{"missing role", signToken(t, "secret", jwt.MapClaims{"user_id": userID, "org_id": orgID})},
		{"bad user id", signToken(t, "secret", jwt.MapClaims{"user_id": "nope", "org_id": orgID, "role": "ADMIN"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser("secret").Parse(tt.token)
			assert.Error(t, err)
		})
	}
}
