package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/data/repos"
	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/logger"
	"github.com/openmedix/facility-backend/internal/requestdata"
)

type AuthService interface {
	// Authenticate verifies a bearer token, loads the actor and returns a
	// context carrying request data for the handler layer.
	Authenticate(ctx context.Context, tokenString string) (context.Context, error)
	// Revoke marks the current request's token as revoked until it expires.
	Revoke(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	rdb      *goredis.Client
	secret   []byte
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, rdb *goredis.Client, jwtSecret string) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		rdb:      rdb,
		secret:   []byte(jwtSecret),
	}
}

func revocationKey(jti string) string {
	return "auth:revoked:" + jti
}

func (as *authService) Authenticate(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return as.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if as.rdb != nil && claims.ID != "" {
		revoked, err := as.rdb.Exists(ctx, revocationKey(claims.ID)).Result()
		if err != nil {
			as.log.Warn("Revocation check failed, rejecting token", "error", err)
			return nil, fmt.Errorf("revocation check failed: %w", err)
		}
		if revoked > 0 {
			return nil, fmt.Errorf("token revoked")
		}
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}
	found, err := as.userRepo.GetByIDs(ctx, nil, []int64{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("user does not exist")
	}

	rd := &requestdata.RequestData{
		User:    found[0],
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		rd.ExpiresAt = claims.ExpiresAt.Time
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) Revoke(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenID == "" {
		return fmt.Errorf("no token in request context")
	}
	if as.rdb == nil {
		as.log.Warn("Revocation store not configured, logout is client-side only")
		return nil
	}
	ttl := time.Until(rd.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return as.rdb.Set(ctx, revocationKey(rd.TokenID), "1", ttl).Err()
}

func (as *authService) CurrentUser(ctx context.Context) (*domain.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.User == nil {
		return nil, fmt.Errorf("request data not set in context")
	}
	return rd.User, nil
}
