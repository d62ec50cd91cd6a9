package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/hash"
	"github.com/ruslansymonenko/server-electro-grand/internal/logging"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
	"github.com/ruslansymonenko/server-electro-grand/internal/tokens"
)

// AuthService coordinates registration, login, refresh and logout. No
// session state is kept between calls: every token is self-contained, and
// logout only clears client cookies. A refresh token captured elsewhere
// stays valid until its own expiry, password changes included.
type AuthService struct {
	DB             *gorm.DB
	Issuer         *tokens.Issuer
	AdminSecretKey string
}

type PublicUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResult struct {
	User         PublicUser
	AccessToken  string
	RefreshToken string
	AdminToken   string
}

func publicFields(u *models.User) PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	return s.register(ctx, email, password, name, models.RoleCustomer)
}

func (s *AuthService) RegisterAdmin(ctx context.Context, email, password, name, secretKey string) (*AuthResult, error) {
	if err := s.checkSecretKey(secretKey); err != nil {
		return nil, err
	}
	res, err := s.register(ctx, email, password, name, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	adminToken, err := s.Issuer.IssueAdmin(res.User.ID, models.RoleAdmin)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create admin token", err)
	}
	res.AdminToken = adminToken
	return res, nil
}

func (s *AuthService) register(ctx context.Context, email, password, name, role string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperr.New(apperr.Conflict, "user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "could not check user", err)
	}

	digest, err := hash.Password(password)
	if err != nil {
		l.Error("password hash failed", "error", err)
		return nil, apperr.Wrap(apperr.Internal, "could not create user", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: digest,
		Name:         name,
		Role:         role,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		// two concurrent registrations race on the unique email index;
		// the store rejecting the second write is a Conflict, not a crash
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "user already exists")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not create user", err)
	}

	if user.Name == "" {
		user.Name = fmt.Sprintf("Customer #%d", user.ID)
		if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).
			Update("name", user.Name).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "could not update user", err)
		}
	}

	l.Info("user registered", "user_id", user.ID, "role", role)
	return s.issueFor(&user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.validateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("login successful", "svc", "auth.login", "user_id", user.ID)
	return s.issueFor(user)
}

func (s *AuthService) LoginAdmin(ctx context.Context, email, password, secretKey string) (*AuthResult, error) {
	// the secret key gate runs before any credential work so a bad key
	// reveals nothing about whether the email is registered
	if err := s.checkSecretKey(secretKey); err != nil {
		return nil, err
	}
	res, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	adminToken, err := s.Issuer.IssueAdmin(res.User.ID, models.RoleAdmin)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create admin token", err)
	}
	res.AdminToken = adminToken
	return res, nil
}

// Refresh mints a new token pair from a refresh token alone. The password
// is never re-checked: possession of a validly signed refresh token is
// sufficient.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := s.Issuer.ParseRefresh(refreshToken)
	if err != nil {
		l.Warn("refresh rejected", "error", err)
		return nil, apperr.New(apperr.Unauthorized, "invalid refresh token")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperr.New(apperr.Unauthorized, "invalid refresh token")
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load user", err)
	}

	return s.issueFor(&user)
}

func (s *AuthService) validateUser(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// burn a comparison so the unknown-email path costs the same
			// as a wrong password and both answer identically
			hash.CheckDummy(password)
			l.Warn("login failed", "reason", "unknown email")
			return nil, apperr.New(apperr.Unauthorized, "invalid credentials")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load user", err)
	}

	if !hash.Check(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "wrong password", "user_id", user.ID)
		return nil, apperr.New(apperr.Unauthorized, "invalid credentials")
	}

	return &user, nil
}

func (s *AuthService) checkSecretKey(secretKey string) error {
	if s.AdminSecretKey == "" ||
		subtle.ConstantTimeCompare([]byte(secretKey), []byte(s.AdminSecretKey)) != 1 {
		return apperr.New(apperr.Forbidden, "invalid secret key")
	}
	return nil
}

func (s *AuthService) issueFor(user *models.User) (*AuthResult, error) {
	accessToken, err := s.Issuer.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create access token", err)
	}
	refreshToken, err := s.Issuer.IssueRefresh(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create refresh token", err)
	}
	return &AuthResult{
		User:         publicFields(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
