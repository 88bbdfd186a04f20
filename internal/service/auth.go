package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"weconnect/internal/models"
	"weconnect/internal/repository"
	"weconnect/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the validity window of a session token.
const TokenTTL = 60 * time.Minute

// tempPasswordLen is the length of the generated forgot-password replacement.
const tempPasswordLen = 8

const tempPasswordCharset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ResetMailer dispatches the temporary-password notice. Implemented by
// mail.Mailer; stubbed in tests.
type ResetMailer interface {
	SendPasswordReset(username, email, password string)
}

// AuthService owns registration, credentials and session tokens. A
// session is a signed token plus the user's logged_in flag: both must
// hold for a request to authenticate.
type AuthService struct {
	userRepo  repository.UserRepository
	mailer    ResetMailer
	jwtSecret string
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, mailer ResetMailer, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		mailer:    mailer,
		jwtSecret: jwtSecret,
	}
}

var registerSchema = validation.Schema{
	"username":   {Required: true, NonEmpty: true, Check: validation.CheckUsername},
	"email":      {Required: true, NonEmpty: true, Check: validation.CheckEmail},
	"password":   {Required: true, NonEmpty: true, Check: validation.CheckPassword},
	"first_name": {Required: true, NonEmpty: true},
	"last_name":  {Required: true, NonEmpty: true},
}

var loginSchema = validation.Schema{
	"username": {Required: true, NonEmpty: true},
	"password": {Required: true},
}

var resetPasswordSchema = validation.Schema{
	"password":     {Required: true, Check: validation.CheckPassword},
	"old_password": {Required: true},
}

var updateProfileSchema = validation.Schema{
	"username":   {Required: true, NonEmpty: true},
	"email":      {Required: true, NonEmpty: true},
	"first_name": {Required: true, NonEmpty: true},
	"last_name":  {Required: true, NonEmpty: true},
	"image":      {Required: true, NonEmpty: true},
}

var forgotPasswordSchema = validation.Schema{
	"email": {Required: true, NonEmpty: true, Check: validation.CheckEmail},
}

// Register creates a new account. The username is normalized before the
// uniqueness check and storage; the response never carries the hash.
func (s *AuthService) Register(ctx context.Context, payload map[string]string) (*models.User, error) {
	errs := validation.Validate(registerSchema, payload)
	if errs == nil {
		errs = models.FieldErrors{}
	}

	username := validation.NormalizeUsername(payload["username"])
	if _, hasErr := errs["username"]; !hasErr {
		taken, err := s.userRepo.UsernameTaken(ctx, username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", "Sorry!! username taken!")
		}
	}
	if _, hasErr := errs["email"]; !hasErr {
		taken, err := s.userRepo.EmailTaken(ctx, payload["email"])
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("email", "Email taken")
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload["password"]), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  username,
		Email:     payload["email"],
		Password:  string(hashed),
		FirstName: payload["first_name"],
		LastName:  payload["last_name"],
		Image:     models.DefaultAvatar,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials, issues a session token and sets the
// logged_in flag. A second login elsewhere simply re-sets the flag.
func (s *AuthService) Login(ctx context.Context, payload map[string]string) (string, *models.User, error) {
	if errs := validation.Validate(loginSchema, payload); errs != nil {
		return "", nil, errs
	}

	username := validation.NormalizeUsername(payload["username"])
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, models.NewNotFoundError("username not found")
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload["password"])); cmpErr != nil {
		return "", nil, models.NewUnauthorizedError("incorrect password")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}

	user.LoggedIn = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate resolves a session token to its user. The token must be
// well formed, correctly signed and unexpired, and the claimed user
// must exist with the logged_in flag set. The two failure modes carry
// distinct messages so a stale session is tellable from a bad token.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, models.NewUnauthorizedError("Token is missing, login to get token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Token is invalid or Expired!")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Token is invalid or Expired!")
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, models.NewUnauthorizedError("Token is invalid or Expired!")
	}

	user, err := s.userRepo.GetActiveSession(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Structurally valid token, but the user logged out or was
		// deleted since it was issued.
		return nil, models.NewUnauthorizedError("You are not logged in")
	}
	return user, nil
}

// Logout clears the session flag. A second logout with the same token
// fails at Authenticate, not here.
func (s *AuthService) Logout(ctx context.Context, user *models.User) error {
	user.LoggedIn = false
	return s.userRepo.Update(ctx, user)
}

// ResetPassword replaces the password after verifying the old one. The
// new password must satisfy the strength rules.
func (s *AuthService) ResetPassword(ctx context.Context, user *models.User, payload map[string]string) error {
	if errs := validation.Validate(resetPasswordSchema, payload); errs != nil {
		return errs
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload["old_password"])); cmpErr != nil {
		return models.FieldErrors{"old_password": "incorrect old password"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload["password"]), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// UpdateProfile overwrites all profile fields. Uniqueness of username
// and email is intentionally not re-checked here; registration is the
// only gate.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, payload map[string]string) (*models.User, error) {
	if errs := validation.Validate(updateProfileSchema, payload); errs != nil {
		return nil, errs
	}

	user.Username = payload["username"]
	user.Email = payload["email"]
	user.FirstName = payload["first_name"]
	user.LastName = payload["last_name"]
	user.Image = payload["image"]

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword stores a random temporary password for the account and
// emails it in plaintext. The mail is queued fire-and-forget; the
// caller gets success as soon as the password is persisted.
func (s *AuthService) ForgotPassword(ctx context.Context, payload map[string]string) error {
	if errs := validation.Validate(forgotPasswordSchema, payload); errs != nil {
		return errs
	}

	user, err := s.userRepo.GetByEmail(ctx, payload["email"])
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("email not found! input email associated with the account")
	}

	password, err := generateTempPassword()
	if err != nil {
		return models.NewInternalError(err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if s.mailer != nil {
		s.mailer.SendPasswordReset(user.Username, user.Email, password)
	}
	return nil
}

// generateToken issues the signed session token carrying the public
// identity claims.
func (s *AuthService) generateToken(user *models.User) (string, error) {
	if s.jwtSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"image":      user.Image,
		"exp":        now.Add(TokenTTL).Unix(),
		"iat":        now.Unix(),
		"jti":        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// generateTempPassword draws from the full printable set: letters,
// digits and punctuation.
func generateTempPassword() (string, error) {
	out := make([]byte, tempPasswordLen)
	max := big.NewInt(int64(len(tempPasswordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordCharset[n.Int64()]
	}
	return string(out), nil
}
