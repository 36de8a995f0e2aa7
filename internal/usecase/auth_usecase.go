package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"regexp"
	"strings"
	"time"

	"boutique/internal/domain/model"
	repo "boutique/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Dépendances injectées depuis main.go.
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error)
}

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type PasswordVerifier interface {
	Verify(hash string, password string) error
}

type bcryptHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type bcryptVerifier struct{}

func NewBcryptPasswordVerifier() PasswordVerifier {
	return &bcryptVerifier{}
}

func (v *bcryptVerifier) Verify(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Connexion au dashboard : bcrypt + JWT d'accès + refresh token opaque.
type AuthUsecase struct {
	users      repo.UserRepository
	tokens     repo.RefreshTokenRepository
	verifier   PasswordVerifier
	issuer     TokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewAuthUsecase(
	users repo.UserRepository,
	tokens repo.RefreshTokenRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		tokens:     tokens,
		verifier:   verifier,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

type LoginOutput struct {
	AccessToken  string    `json:"accessToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	RefreshToken string    `json:"refreshToken"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (LoginOutput, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) || password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "identifiants invalides")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//même réponse pour email inconnu et mauvais mot de passe
	if user == nil || !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "identifiants invalides")
	}
	if err := u.verifier.Verify(user.PasswordHash, password); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "identifiants invalides")
	}

	now := u.clock.Now()

	access, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	refresh, err := u.createRefreshToken(ctx, user.ID, now)
	if err != nil {
		return LoginOutput{}, err
	}

	user.LastLoginAt = &now
	_ = u.users.Update(ctx, user)

	return LoginOutput{
		AccessToken:  access,
		ExpiresAt:    expiresAt,
		RefreshToken: refresh,
	}, nil
}

// Refresh tourne le refresh token : l'ancien est révoqué, un nouveau est émis.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (LoginOutput, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "refresh token requis")
	}

	stored, err := u.tokens.FindByTokenHash(ctx, hashToken(refreshToken))
	if err == repo.ErrRefreshTokenNotFound {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "session expirée")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	if stored.RevokedAt != nil || now.After(stored.ExpiresAt) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "session expirée")
	}

	user, err := u.users.FindByID(ctx, stored.UserID)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil || !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "session expirée")
	}

	if err := u.tokens.Revoke(ctx, stored.ID, now); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	access, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	refresh, err := u.createRefreshToken(ctx, user.ID, now)
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{
		AccessToken:  access,
		ExpiresAt:    expiresAt,
		RefreshToken: refresh,
	}, nil
}

func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}

	stored, err := u.tokens.FindByTokenHash(ctx, hashToken(refreshToken))
	if err == repo.ErrRefreshTokenNotFound {
		//déjà déconnecté
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.tokens.Revoke(ctx, stored.ID, u.clock.Now()); err != nil && err != repo.ErrRefreshTokenNotFound {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) createRefreshToken(ctx context.Context, userID int64, now time.Time) (string, error) {
	raw := u.idGen.NewID()

	token := &model.RefreshToken{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		TokenHash: hashToken(raw),
		ExpiresAt: now.Add(u.refreshTTL),
		CreatedAt: now,
	}
	if err := u.tokens.Create(ctx, token); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return raw, nil
}

// seul le hash est stocké
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
