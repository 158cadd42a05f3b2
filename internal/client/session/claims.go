package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/stocklyhq/stockly/internal/client/models"
)

// userFromTokenClaims decodes the access token without verifying its
// signature and lifts the identity claims the backend embeds. Verification
// belongs to the server; here the claims are display data only.
func userFromTokenClaims(accessToken string) *models.StoredUser {
	if accessToken == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil
	}

	u := &models.StoredUser{
		Username:  claimString(claims, "username"),
		Email:     claimString(claims, "email"),
		FirstName: claimString(claims, "first_name"),
		LastName:  claimString(claims, "last_name"),
	}
	if id, ok := claims["user_id"].(float64); ok {
		u.ID = int64(id)
	}
	if u.ID == 0 && u.Username == "" {
		return nil
	}
	return u
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
