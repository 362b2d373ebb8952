package usecase

import (
	"context"
	"testing"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/seed"
	"go-healthcare-portal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("patient drops specialization", func(t *testing.T) {
		user, err := env.auth.Register(ctx, &dto.RegisterRequest{
			Name:           "Ana Lopez",
			Email:          "Ana.Lopez@Example.com",
			Password:       "secret1",
			Role:           "patient",
			Specialization: "Cardiology",
		})
		require.NoError(t, err)
		assert.Equal(t, "ana.lopez@example.com", user.Email)
		assert.Equal(t, "patient", user.Role)
		assert.Empty(t, user.Specialization)

		prefs, err := env.profile.GetPreferences(ctx, entity.Actor{ID: user.ID, Role: entity.RolePatient})
		require.NoError(t, err)
		assert.True(t, prefs.Appointments)
		assert.True(t, prefs.Medication)
		assert.False(t, prefs.Marketing)
	})

	t.Run("doctor keeps specialization", func(t *testing.T) {
		user, err := env.auth.Register(ctx, &dto.RegisterRequest{
			Name:           "Dr. Lee",
			Email:          "lee@hospital.com",
			Password:       "secret1",
			Role:           "doctor",
			Specialization: "Neurology",
		})
		require.NoError(t, err)
		assert.Equal(t, "Neurology", user.Specialization)
	})

	t.Run("duplicate email ignores case", func(t *testing.T) {
		_, err := env.auth.Register(ctx, &dto.RegisterRequest{
			Name:     "John Again",
			Email:    "JOHN.SMITH@email.com",
			Password: "secret1",
			Role:     "patient",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("seeded patient", func(t *testing.T) {
		res, err := env.auth.Login(ctx, &dto.LoginRequest{Email: seed.PatientJohnEmail, Password: "password123", Role: "patient"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
		assert.Equal(t, int64(900), res.ExpiresIn)
		assert.Equal(t, "John Smith", res.User.Name)

		claims, err := env.jwtService.ValidateToken(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "patient", claims.Role)

		ok, err := env.tokenStore.Exists(ctx, jwt.AccessToken, claims.UserID, claims.TokenID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	cases := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong role", dto.LoginRequest{Email: seed.PatientJohnEmail, Password: "password123", Role: "doctor"}},
		{"wrong password", dto.LoginRequest{Email: seed.DoctorSarahEmail, Password: "nope", Role: "doctor"}},
		{"unknown email", dto.LoginRequest{Email: "ghost@email.com", Password: "password123", Role: "patient"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := env.auth.Login(ctx, &req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Email: seed.DoctorSarahEmail, Password: "password123", Role: "doctor"})
	require.NoError(t, err)

	refreshed, err := env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: refreshed.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Email: seed.PatientJohnEmail, Password: "password123", Role: "patient"})
	require.NoError(t, err)

	claims, err := env.jwtService.ValidateToken(login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, claims, login.RefreshToken))

	ok, err := env.tokenStore.Exists(ctx, jwt.AccessToken, claims.UserID, claims.TokenID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	activity, err := env.profile.Activity(ctx, john)
	require.NoError(t, err)
	require.NotEmpty(t, activity.Logs)
	assert.Equal(t, entity.AuditActionUserLogout, activity.Logs[0].Action)
}

func TestGetCurrentUser(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.GetCurrentUser(context.Background(), seed.DoctorSarahID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", user.Specialization)

	_, err = env.auth.GetCurrentUser(context.Background(), seed.PatientJohnID)
	require.NoError(t, err)
}
