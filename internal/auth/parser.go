package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ledgewood/estimates/internal/model"
)

// Parser validates access tokens issued by the identity service and extracts
// the caller's principal.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

func (p *Parser) Parse(tokenString string) (model.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return model.Principal{}, fmt.Errorf("invalid token claims")
	}

	userID, err := claimUUID(claims, "user_id")
	if err != nil {
		return model.Principal{}, err
	}
	orgID, err := claimUUID(claims, "org_id")
	if err != nil {
		return model.Principal{}, err
	}
	role, _ := claims["role"].(string)
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" {
		return model.Principal{}, fmt.Errorf("role claim is required")
	}

	return model.Principal{
		UserID: userID,
		OrgID:  orgID,
		Role:   role,
	}, nil
}

func claimUUID(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, _ := claims[key].(string)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s claim is invalid", key)
	}
	return id, nil
}
