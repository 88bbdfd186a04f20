package service

import (
	"context"
	"strings"
	"testing"

	"weconnect/internal/models"
	"weconnect/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getActiveSessionFn func(context.Context, string) (*models.User, error)
	usernameTakenFn    func(context.Context, string) (bool, error)
	emailTakenFn       func(context.Context, string) (bool, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetActiveSession(ctx context.Context, username string) (*models.User, error) {
	return s.getActiveSessionFn(ctx, username)
}
func (s *userRepoStub) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.usernameTakenFn(ctx, username)
}
func (s *userRepoStub) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.emailTakenFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(_ context.Context, _ uint) (*models.User, error) { return nil, nil },
		getByUsernameFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:       func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getActiveSessionFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		usernameTakenFn:    func(_ context.Context, _ string) (bool, error) { return false, nil },
		emailTakenFn:       func(_ context.Context, _ string) (bool, error) { return false, nil },
		createFn:           func(_ context.Context, _ *models.User) error { return nil },
		updateFn:           func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
	}
}

// mailerStub records password-reset notices instead of sending them.
type mailerStub struct {
	username, email, password string
	calls                     int
}

func (m *mailerStub) SendPasswordReset(username, email, password string) {
	m.username = username
	m.email = email
	m.password = password
	m.calls++
}

func registerPayload() map[string]string {
	return map[string]string{
		"username":   "wanjiku",
		"email":      "wanjiku@example.com",
		"password":   "Test@12",
		"first_name": "Wanjiku",
		"last_name":  "Kamau",
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func assertFieldError(t *testing.T, err error, field, message string) {
	t.Helper()
	var errs models.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, message, errs[field])
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success stores hash and normalized username", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var created *models.User
		repo.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 1
			created = u
			return nil
		}
		svc := NewAuthService(repo, nil, testJWTSecret)

		payload := registerPayload()
		payload["username"] = "  WanJiku "
		user, err := svc.Register(ctx, payload)
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "wanjiku", user.Username)
		assert.Equal(t, models.DefaultAvatar, user.Image)
		assert.NotEqual(t, "Test@12", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Test@12")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.usernameTakenFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
		svc := NewAuthService(repo, nil, testJWTSecret)

		_, err := svc.Register(ctx, registerPayload())
		assertFieldError(t, err, "username", "Sorry!! username taken!")
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.emailTakenFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
		svc := NewAuthService(repo, nil, testJWTSecret)

		_, err := svc.Register(ctx, registerPayload())
		assertFieldError(t, err, "email", "Email taken")
	})

	t.Run("digits-only username", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		payload := registerPayload()
		payload["username"] = "12345"
		_, err := svc.Register(ctx, payload)
		assertFieldError(t, err, "username", validation.MsgUsernameNumeric)
	})

	t.Run("weak password", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		payload := registerPayload()
		payload["password"] = "test"
		_, err := svc.Register(ctx, payload)
		assertFieldError(t, err, "password", validation.MsgPasswordRule)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		payload := registerPayload()
		payload["email"] = "not-an-email"
		_, err := svc.Register(ctx, payload)
		assertFieldError(t, err, "email", validation.MsgInvalidEmail)
	})

	t.Run("uniqueness not checked on invalid username", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.usernameTakenFn = func(_ context.Context, _ string) (bool, error) {
			t.Fatal("UsernameTaken should not run for an invalid username")
			return false, nil
		}
		svc := NewAuthService(repo, nil, testJWTSecret)

		payload := registerPayload()
		payload["username"] = "12345"
		_, err := svc.Register(ctx, payload)
		assertFieldError(t, err, "username", validation.MsgUsernameNumeric)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	account := func(t *testing.T) *models.User {
		return &models.User{
			ID:       7,
			Username: "wanjiku",
			Email:    "wanjiku@example.com",
			Password: hashPassword(t, "Test@12"),
			Image:    models.DefaultAvatar,
		}
	}

	t.Run("unknown username is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		_, _, err := svc.Login(ctx, map[string]string{"username": "ghost", "password": "Test@12"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.Equal(t, "username not found", appErr.Message)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		user := account(t)
		repo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) { return user, nil }
		svc := NewAuthService(repo, nil, testJWTSecret)

		_, _, err := svc.Login(ctx, map[string]string{"username": "wanjiku", "password": "Wrong@12"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
		assert.Equal(t, "incorrect password", appErr.Message)
	})

	t.Run("success issues token and sets session flag", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		user := account(t)
		repo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) { return user, nil }
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewAuthService(repo, nil, testJWTSecret)

		token, loggedIn, err := svc.Login(ctx, map[string]string{"username": "WanJiku", "password": "Test@12"})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.True(t, saved.LoggedIn)
		assert.True(t, loggedIn.LoggedIn)

		parsed, err := jwt.Parse(token, func(_ *jwt.Token) (any, error) {
			return []byte(testJWTSecret), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, "wanjiku", claims["username"])
		assert.Equal(t, "wanjiku@example.com", claims["email"])
		assert.NotEmpty(t, claims["jti"])
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		_, _, err := svc.Login(ctx, map[string]string{"username": "wanjiku"})
		assertFieldError(t, err, "password", validation.MsgRequired)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	issueToken := func(t *testing.T, svc *AuthService, user *models.User) string {
		t.Helper()
		token, err := svc.generateToken(user)
		require.NoError(t, err)
		return token
	}

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		_, err := svc.Authenticate(ctx, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Token is missing, login to get token", appErr.Message)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		_, err := svc.Authenticate(ctx, "not.a.token")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Token is invalid or Expired!", appErr.Message)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		t.Parallel()
		other := NewAuthService(noopUserRepo(), nil, "other-secret")
		token := issueToken(t, other, &models.User{Username: "wanjiku"})

		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)
		_, err := svc.Authenticate(ctx, token)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Token is invalid or Expired!", appErr.Message)
	})

	t.Run("valid token but logged out", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		svc := NewAuthService(repo, nil, testJWTSecret)
		token := issueToken(t, svc, &models.User{Username: "wanjiku"})

		_, err := svc.Authenticate(ctx, token)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "You are not logged in", appErr.Message)
	})

	t.Run("valid token with active session", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		active := &models.User{ID: 7, Username: "wanjiku", LoggedIn: true}
		repo.getActiveSessionFn = func(_ context.Context, username string) (*models.User, error) {
			assert.Equal(t, "wanjiku", username)
			return active, nil
		}
		svc := NewAuthService(repo, nil, testJWTSecret)
		token := issueToken(t, svc, active)

		user, err := svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var saved *models.User
	repo.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}
	svc := NewAuthService(repo, nil, testJWTSecret)

	user := &models.User{ID: 7, Username: "wanjiku", LoggedIn: true}
	require.NoError(t, svc.Logout(context.Background(), user))
	require.NotNil(t, saved)
	assert.False(t, saved.LoggedIn)
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("incorrect old password", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		user := &models.User{Password: hashPassword(t, "Test@12")}
		err := svc.ResetPassword(ctx, user, map[string]string{
			"password":     "NewPass1",
			"old_password": "Wrong@12",
		})
		assertFieldError(t, err, "old_password", "incorrect old password")
	})

	t.Run("weak new password", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		user := &models.User{Password: hashPassword(t, "Test@12")}
		err := svc.ResetPassword(ctx, user, map[string]string{
			"password":     "weak",
			"old_password": "Test@12",
		})
		assertFieldError(t, err, "password", validation.MsgPasswordRule)
	})

	t.Run("success rehashes", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewAuthService(repo, nil, testJWTSecret)

		user := &models.User{Password: hashPassword(t, "Test@12")}
		err := svc.ResetPassword(ctx, user, map[string]string{
			"password":     "NewPass1",
			"old_password": "Test@12",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("NewPass1")))
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("all fields required", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), nil, testJWTSecret)

		_, err := svc.UpdateProfile(ctx, &models.User{}, map[string]string{"username": "wanjiku"})
		assertFieldError(t, err, "email", validation.MsgRequired)
	})

	t.Run("overwrites profile", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewAuthService(repo, nil, testJWTSecret)

		user := &models.User{ID: 7, Username: "wanjiku", Image: models.DefaultAvatar}
		updated, err := svc.UpdateProfile(ctx, user, map[string]string{
			"username":   "njeri",
			"email":      "njeri@example.com",
			"first_name": "Njeri",
			"last_name":  "Mwangi",
			"image":      "selfie.png",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "njeri", updated.Username)
		assert.Equal(t, "selfie.png", updated.Image)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), &mailerStub{}, testJWTSecret)

		err := svc.ForgotPassword(ctx, map[string]string{"email": "ghost@example.com"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.Equal(t, "email not found! input email associated with the account", appErr.Message)
	})

	t.Run("replaces password and mails the new one", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		user := &models.User{
			ID:       7,
			Username: "wanjiku",
			Email:    "wanjiku@example.com",
			Password: hashPassword(t, "Test@12"),
		}
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return user, nil }
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		mailer := &mailerStub{}
		svc := NewAuthService(repo, mailer, testJWTSecret)

		err := svc.ForgotPassword(ctx, map[string]string{"email": "wanjiku@example.com"})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, 1, mailer.calls)
		assert.Equal(t, "wanjiku", mailer.username)
		assert.Len(t, mailer.password, tempPasswordLen)
		assert.False(t, strings.ContainsAny(mailer.password, " \n"))
		// The mailed password is the one now accepted by login.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte(mailer.password)))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("Test@12")))
	})
}
