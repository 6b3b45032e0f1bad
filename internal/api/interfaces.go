package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/limbo/breakfree/pkg/entity"
)

type JWTServiceI interface {
	GenerateToken(user *entity.User) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type ProfileWatcherI interface {
	// Registers callbacks for live profile snapshots of uid, returns an
	// unsubscribe func safe to call more than once
	Subscribe(uid uuid.UUID, onData func(*entity.Profile), onError func(error)) func()
}
