package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/messaging"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

// SessionService owns the account directory and the session bound to it.
type SessionService struct {
	accounts  repository.AccountRepository
	sessions  repository.SessionRepository
	carts     repository.CartRepository
	publisher messaging.Publisher
	log       *zap.SugaredLogger
	cost      int
	now       func() time.Time
}

func NewSessionService(
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	carts repository.CartRepository,
	publisher messaging.Publisher,
	log *zap.SugaredLogger,
	passwordCost int,
) *SessionService {
	if passwordCost < bcrypt.MinCost || passwordCost > bcrypt.MaxCost {
		passwordCost = bcrypt.DefaultCost
	}
	return &SessionService{
		accounts:  accounts,
		sessions:  sessions,
		carts:     carts,
		publisher: publisher,
		log:       log,
		cost:      passwordCost,
		now:       time.Now,
	}
}

// HashPassword returns the bcrypt hash stored on accounts.
func (s *SessionService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates an account with a zero balance and binds the session to it.
func (s *SessionService) Register(ctx context.Context, reg entity.Registration) (entity.Account, error) {
	s.log.Infow("Service: Registering account", "username", reg.Username)

	if strings.TrimSpace(reg.Username) == "" || reg.Password == "" {
		return entity.Account{}, entity.ErrInvalidSignup
	}
	if _, err := s.accounts.FindByUsername(ctx, reg.Username); err == nil {
		return entity.Account{}, entity.ErrDuplicateUsername
	} else if !errors.Is(err, entity.ErrAccountNotFound) {
		return entity.Account{}, fmt.Errorf("failed to look up username: %w", err)
	}

	hash, err := s.HashPassword(reg.Password)
	if err != nil {
		return entity.Account{}, err
	}
	account := entity.Account{
		ID:           uuid.NewString(),
		Name:         reg.Name,
		Email:        reg.Email,
		Username:     reg.Username,
		PasswordHash: hash,
		Balance:      decimal.Zero,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, entity.ErrDuplicateUsername) {
			return entity.Account{}, err
		}
		return entity.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	if err := s.bind(ctx, account.ID); err != nil {
		return entity.Account{}, err
	}

	messaging.Emit(ctx, s.publisher, s.log, account.ID, entity.AccountRegistered{
		AccountID:    account.ID,
		Username:     account.Username,
		RegisteredAt: account.CreatedAt,
	})
	return account, nil
}

// Login binds the session to the account matching username and password.
func (s *SessionService) Login(ctx context.Context, username, password string) (entity.Account, error) {
	s.log.Infow("Service: Logging in", "username", username)

	account, err := s.accounts.FindByUsername(ctx, username)
	if errors.Is(err, entity.ErrAccountNotFound) {
		return entity.Account{}, entity.ErrInvalidCredentials
	}
	if err != nil {
		return entity.Account{}, fmt.Errorf("failed to look up username: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return entity.Account{}, entity.ErrInvalidCredentials
	}
	if err := s.bind(ctx, account.ID); err != nil {
		return entity.Account{}, err
	}
	return account, nil
}

func (s *SessionService) bind(ctx context.Context, accountID string) error {
	if err := s.sessions.Save(ctx, entity.Session{AccountID: accountID, StartedAt: s.now().UTC()}); err != nil {
		return fmt.Errorf("failed to bind session: %w", err)
	}
	return nil
}

// Logout clears the session and its cart. It is idempotent.
func (s *SessionService) Logout(ctx context.Context) error {
	s.log.Infow("Service: Logging out")
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.carts.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Current returns the bound account, or nil when the session is anonymous.
func (s *SessionService) Current(ctx context.Context) (*entity.Account, error) {
	session, ok, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	account, err := s.accounts.FindByID(ctx, session.AccountID)
	if errors.Is(err, entity.ErrAccountNotFound) {
		s.log.Warnw("Session points at a missing account", "account_id", session.AccountID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &account, nil
}

// update applies fn to the bound account. It returns nil, nil when anonymous.
func (s *SessionService) update(ctx context.Context, fn func(*entity.Account) error) (*entity.Account, error) {
	current, err := s.Current(ctx)
	if err != nil || current == nil {
		return nil, err
	}
	updated, err := s.accounts.Update(ctx, current.ID, fn)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateBalance adds delta to the bound account. A negative result is not
// rejected here; Deposit, Withdraw and checkout validate before calling.
func (s *SessionService) UpdateBalance(ctx context.Context, delta decimal.Decimal) (*entity.Account, error) {
	account, err := s.update(ctx, func(a *entity.Account) error {
		a.Balance = a.Balance.Add(delta)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	if account != nil {
		s.log.Infow("Service: Balance updated", "account_id", account.ID, "delta", delta.StringFixed(2), "balance", account.Balance.StringFixed(2))
	}
	return account, nil
}

// Deposit credits a positive amount to the bound account.
func (s *SessionService) Deposit(ctx context.Context, amount decimal.Decimal) (*entity.Account, error) {
	if !amount.IsPositive() {
		return nil, entity.ErrInvalidAmount
	}
	return s.UpdateBalance(ctx, amount)
}

// Withdraw debits a positive amount no larger than the current balance.
func (s *SessionService) Withdraw(ctx context.Context, amount decimal.Decimal) (*entity.Account, error) {
	if !amount.IsPositive() {
		return nil, entity.ErrInvalidAmount
	}
	account, err := s.update(ctx, func(a *entity.Account) error {
		if a.Balance.LessThan(amount) {
			return entity.ErrInsufficientFunds
		}
		a.Balance = a.Balance.Sub(amount)
		return nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrInsufficientFunds) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}
	return account, nil
}

// UpdateUser merges patch into the bound account.
func (s *SessionService) UpdateUser(ctx context.Context, patch entity.ProfilePatch) (*entity.Account, error) {
	var hash string
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, entity.ErrInvalidSignup
		}
		h, err := s.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	if patch.Username != nil && strings.TrimSpace(*patch.Username) == "" {
		return nil, entity.ErrInvalidSignup
	}

	account, err := s.update(ctx, func(a *entity.Account) error {
		if patch.Name != nil {
			a.Name = *patch.Name
		}
		if patch.Email != nil {
			a.Email = *patch.Email
		}
		if patch.Username != nil {
			a.Username = *patch.Username
		}
		if hash != "" {
			a.PasswordHash = hash
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return account, nil
}

// CreateStore links the bound account to storeID.
func (s *SessionService) CreateStore(ctx context.Context, storeID string) (*entity.Account, error) {
	account, err := s.update(ctx, func(a *entity.Account) error {
		a.HasStore = true
		a.StoreID = storeID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to link store: %w", err)
	}
	return account, nil
}
