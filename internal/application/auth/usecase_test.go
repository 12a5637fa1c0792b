package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/memory"
	"github.com/sebastiaoggj/Agro-sh-sub000/pkg/jwt"
)

const companyID = "0f8fad5b-d9cb-469f-a165-70867728950e"

func newAuth(t *testing.T) (*AuthUseCase, jwt.Config) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{ID: companyID, Name: "Fazenda Modelo", Status: "active"}))
	tokens := jwt.Config{Secret: "secreto", Issuer: "agro-api", ExpMinutes: 10}
	return NewAuthUseCase(store.Users(), store.Companies(), tokens), tokens
}

func TestRegisterYLogin(t *testing.T) {
	uc, tokens := newAuth(t)
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Fazenda.com", Password: "senha-segura", CompanyID: companyID, Role: entity.RoleAgronomo})
	require.NoError(t, err)
	assert.Equal(t, "ana@fazenda.com", user.Email)
	assert.Equal(t, entity.RoleAgronomo, user.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@fazenda.com", Password: "otra-senha", CompanyID: companyID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@fazenda.com", Password: "senha-segura"})
	require.NoError(t, err)
	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, companyID, claims.CompanyID)
	assert.Equal(t, entity.RoleAgronomo, claims.Role)
}

func TestLogin_Errores(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "op@fazenda.com", Password: "senha-segura", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "op@fazenda.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@fazenda.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@y.com", Password: "senha-segura", CompanyID: "8c3f6a43-1111-4b8e-9a0e-000000000000"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
