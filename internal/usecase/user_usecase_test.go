package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
	"github.com/iho/corebank/internal/usecase/mocks"
)

func TestUserUseCase_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	accRepo := mocks.NewMockAccountRepository()
	txMgr := mocks.NewMockTransactionManager()

	uc := usecase.NewUserUseCase(txMgr, userRepo, accRepo, mocks.NewMockNumberGenerator())

	userRepo.EXPECT().
		GetByEmail(gomock.Any(), "alice@example.com").
		Return(nil, domain.ErrUserNotFound)

	userRepo.EXPECT().
		CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, user *domain.User) error {
			user.ID = 10

			assert.NotEqual(t, "s3cret-password", user.HashedPassword)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("s3cret-password")))

			return nil
		})

	user, account, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Empty(t, user.HashedPassword)

	require.NotNil(t, account)
	assert.Equal(t, int64(10), account.OwnerID)
	assert.Equal(t, domain.Money(0), account.Balance)
	assert.NotEmpty(t, account.Number)

	txs := txMgr.Transactions()
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Committed)
}

func TestUserUseCase_Register_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)

	uc := usecase.NewUserUseCase(mocks.NewMockTransactionManager(), userRepo, mocks.NewMockAccountRepository(), mocks.NewMockNumberGenerator())

	tests := []struct {
		name  string
		input usecase.RegisterInput
		want  error
	}{
		{
			name:  "bad email",
			input: usecase.RegisterInput{Name: "Bob", Email: "not-an-email", Password: "s3cret-password"},
			want:  domain.ErrInvalidEmail,
		},
		{
			name:  "short password",
			input: usecase.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "short"},
			want:  domain.ErrPasswordTooWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := uc.Register(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserUseCase_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)

	uc := usecase.NewUserUseCase(mocks.NewMockTransactionManager(), userRepo, mocks.NewMockAccountRepository(), mocks.NewMockNumberGenerator())

	userRepo.EXPECT().
		GetByEmail(gomock.Any(), "alice@example.com").
		Return(&domain.User{ID: 10, Email: "alice@example.com"}, nil)

	_, _, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Alice Again",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserUseCase_Authenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &domain.User{ID: 10, Email: "alice@example.com", HashedPassword: string(hashed), Role: domain.RoleCustomer}

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    "alice@example.com",
			password: "s3cret-password",
			found:    true,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrong-password",
			found:    true,
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "s3cret-password",
			wantErr:  domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			userRepo := mocks.NewMockUserRepository(ctrl)

			if tt.found {
				userRepo.EXPECT().GetByEmail(gomock.Any(), tt.email).Return(stored, nil)
			} else {
				userRepo.EXPECT().GetByEmail(gomock.Any(), tt.email).Return(nil, domain.ErrUserNotFound)
			}

			uc := usecase.NewUserUseCase(mocks.NewMockTransactionManager(), userRepo, mocks.NewMockAccountRepository(), mocks.NewMockNumberGenerator())

			user, err := uc.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, user.ID)
		})
	}
}
