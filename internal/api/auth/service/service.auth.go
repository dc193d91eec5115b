// Package authsvc implements credential checks and token issuance.
package authsvc

import (
	"context"
	"fmt"
	"time"

	authdto "treesure/internal/api/auth/dto"
	"treesure/internal/api/auth/models"
	"treesure/internal/api/middleware"
	"treesure/internal/common"
	"treesure/internal/global"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials against the users collection and
// issues session tokens.
type AuthService struct {
	users *mongo.Collection
}

// NewAuthService resolves the users collection from the registry.
func NewAuthService() (*AuthService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	return &AuthService{users: coll}, nil
}

// Login checks the credentials and returns a signed JWT. Each login
// mints a fresh session id, which scopes the report snapshot cache.
func (s *AuthService) Login(ctx context.Context, input *authdto.LoginRequest) (*authdto.LoginResponse, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ConvertMongoError(err)
	}

	if user.IsBlock {
		return nil, common.NewError(common.ErrCodeAuth, "Account is blocked", common.StatusForbidden, user.BlockNote)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	cfg := global.ServerConfig
	expiresAt := time.Now().Add(time.Duration(cfg.JwtExpiryHours) * time.Hour)
	claims := middleware.TokenClaims{
		UserID:    user.ID.Hex(),
		SessionID: uuid.NewString(),
		Email:     user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JwtSecret))
	if err != nil {
		return nil, common.NewError(common.ErrCodeAuth, "Failed to issue token", common.StatusInternalServerError, err.Error())
	}

	return &authdto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
		UserID:    user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
	}, nil
}

// GetProfile returns the profile of an authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrUserNotFound
		}
		return nil, common.ConvertMongoError(err)
	}
	return &user, nil
}
