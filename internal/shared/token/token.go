package token

import (
	"errors"
	"fmt"
	"time"

	"team-pulse/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the access token payload. TeamID is empty for users without a team.
type Claims struct {
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
	TeamID      string `json:"team_id,omitempty"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

func Issue(secret string, id domain.Identity, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		UserID:      id.UserID.String(),
		WorkspaceID: id.WorkspaceID.String(),
		Role:        string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if id.HasTeam() {
		claims.TeamID = id.TeamID.String()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse verifies the signature and expiry and converts the claims into an Identity.
func Parse(secret, tokenString string) (domain.Identity, error) {
	var claims Claims
	t, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, ErrTokenExpired
		}
		return domain.Identity{}, ErrInvalidToken
	}
	if !t.Valid {
		return domain.Identity{}, ErrInvalidToken
	}

	return claims.identity()
}

func (c Claims) identity() (domain.Identity, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}
	workspaceID, err := uuid.Parse(c.WorkspaceID)
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}
	role, ok := domain.ParseRole(c.Role)
	if !ok {
		return domain.Identity{}, ErrInvalidToken
	}

	id := domain.Identity{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        role,
	}
	if c.TeamID != "" {
		teamID, err := uuid.Parse(c.TeamID)
		if err != nil {
			return domain.Identity{}, ErrInvalidToken
		}
		id.TeamID = &teamID
	}
	return id, nil
}
