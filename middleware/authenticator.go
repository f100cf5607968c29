package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "quotecompare/database/repository/user"
	"quotecompare/models"
	"quotecompare/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrAccountBlocked = errors.New("account is blocked")
)

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Authenticator turns bearer tokens into caller identities.
type Authenticator struct {
	// Verifier is nil in mock mode, where only the insecure path can succeed.
	Verifier TokenVerifier
	Users    userRepo.UserRepository
	Cache    *redis.Client
	CacheTTL time.Duration
	// AllowInsecure enables unverified decoding when verification fails.
	// Never set it in production.
	AllowInsecure bool
}

// Authenticate verifies the token and resolves the caller's role. mockRole is
// honoured only on the insecure path.
func (a *Authenticator) Authenticate(ctx context.Context, token, mockRole string) (*models.AuthUser, error) {
	identity, verr := a.verify(ctx, token)
	if verr != nil {
		if !a.AllowInsecure {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, verr)
		}
		utils.GetLogger().Warn("token verification failed, decoding without verification (development only)", zap.Error(verr))
		return decodeInsecure(token, mockRole)
	}
	return a.resolve(ctx, identity)
}

// verify checks the token with the identity provider, consulting the cache first.
func (a *Authenticator) verify(ctx context.Context, token string) (*models.AuthUser, error) {
	if a.Verifier == nil {
		return nil, errors.New("identity provider not configured")
	}

	hash := utils.HashToken(token)
	if a.Cache != nil {
		cached, err := utils.GetAuthSession(ctx, a.Cache, hash)
		if err != nil {
			utils.GetLogger().Debug("auth cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	tok, err := a.Verifier.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}
	identity := &models.AuthUser{
		UID:   tok.UID,
		Email: utils.ClaimString(tok.Claims, "email"),
		Name:  utils.ClaimString(tok.Claims, "name"),
		Role:  models.Role(utils.ClaimString(tok.Claims, "role")),
	}

	if a.Cache != nil {
		ttl := a.CacheTTL
		if ttl <= 0 {
			ttl = utils.DefaultAuthCacheTTL
		}
		if untilExpiry := time.Until(time.Unix(tok.Expires, 0)); untilExpiry < ttl {
			ttl = untilExpiry
		}
		// A zero TTL would never expire in Redis.
		if ttl > 0 {
			if err := utils.SaveAuthSession(ctx, a.Cache, hash, *identity, ttl); err != nil {
				utils.GetLogger().Debug("auth cache write failed", zap.Error(err))
			}
		}
	}
	return identity, nil
}

// resolve applies the user document: blocked accounts are refused and the
// stored role wins over the token claim.
func (a *Authenticator) resolve(ctx context.Context, identity *models.AuthUser) (*models.AuthUser, error) {
	user := *identity
	if a.Users != nil {
		doc, err := a.Users.GetByID(ctx, user.UID)
		switch {
		case err == nil:
			if doc.Disabled {
				return nil, ErrAccountBlocked
			}
			if doc.Role.Valid() {
				user.Role = doc.Role
			}
			if user.Email == "" {
				user.Email = doc.Email
			}
			if user.Name == "" {
				user.Name = doc.DisplayName
			}
		case errors.Is(err, models.ErrUserNotFound):
		default:
			utils.GetLogger().Warn("failed to load user document, using token claims",
				zap.String("uid", user.UID), zap.Error(err))
		}
	}
	if !user.Role.Valid() {
		user.Role = models.RoleBuyer
	}
	return &user, nil
}

func decodeInsecure(token, mockRole string) (*models.AuthUser, error) {
	claims, err := utils.DecodeUnverified(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	uid := utils.ClaimString(claims, "uid", "sub", "user_id")
	if uid == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, utils.ErrNoSubject)
	}

	role := models.Role(strings.ToLower(strings.TrimSpace(mockRole)))
	if !role.Valid() {
		role = models.Role(utils.ClaimString(claims, "role"))
	}
	if !role.Valid() {
		role = models.RoleBuyer
	}
	return &models.AuthUser{
		UID:      uid,
		Email:    utils.ClaimString(claims, "email"),
		Name:     utils.ClaimString(claims, "name"),
		Role:     role,
		Insecure: true,
	}, nil
}
