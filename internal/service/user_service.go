package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"usermgmt/internal/auth"
	apperrors "usermgmt/internal/errors"
	"usermgmt/internal/model"
	"usermgmt/internal/notify"
	"usermgmt/internal/repository"
)

// Bulk actions accepted by BulkAction.
const (
	ActionBlock            = "block"
	ActionUnblock          = "unblock"
	ActionDelete           = "delete"
	ActionDeleteUnverified = "deleteUnverified"
)

// VerifyOutcome describes a successful email verification.
type VerifyOutcome int

const (
	// VerifyOK covers the unverified→active transition and the idempotent
	// repeat on an already active account.
	VerifyOK VerifyOutcome = iota
	// VerifyBlockedRemains means the email checks out but the account stays
	// blocked; success with a caveat, not an error.
	VerifyBlockedRemains
)

// BulkResult reports the outcome of an administrative bulk action.
type BulkResult struct {
	Message             string
	AffectedCount       int64
	CurrentUserAffected bool
}

// UserService is the account lifecycle manager: registration, credential
// verification, the email-confirmation flow and administrative bulk
// mutations.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) (VerifyOutcome, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	BulkAction(ctx context.Context, actorID uint, ids []uint, action string) (*BulkResult, error)
}

type userService struct {
	users      repository.UserRepository
	dispatcher *notify.Dispatcher
	appURL     string
}

// NewUserService builds the lifecycle manager. dispatcher may be nil when
// mail delivery is disabled.
func NewUserService(users repository.UserRepository, dispatcher *notify.Dispatcher, appURL string) UserService {
	return &userService{
		users:      users,
		dispatcher: dispatcher,
		appURL:     appURL,
	}
}

// Register creates an unverified account and queues the confirmation email.
// The email is fire-and-forget: its outcome never affects the response.
func (s *userService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	email = strings.ToLower(email)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       model.StatusUnverified,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.dispatcher != nil {
		subject, body := notify.VerificationEmail(s.appURL, auth.EncodeVerification(email))
		s.dispatcher.Dispatch(email, subject, body)
	}

	return user, nil
}

// Authenticate checks credentials. Unknown email and wrong password produce
// the same generic failure so callers cannot enumerate accounts; a blocked
// account gets its own distinct outcome. Success stamps the last login time.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.Status == model.StatusBlocked {
		return nil, apperrors.ErrBlocked
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLoginTime = &now

	return user, nil
}

// VerifyEmail resolves a confirmation token to an account and applies the
// unverified→active transition. Repeating it on an active account is a
// no-op; a blocked account stays blocked and reports success with a caveat.
func (s *userService) VerifyEmail(ctx context.Context, token string) (VerifyOutcome, error) {
	email, err := auth.DecodeVerification(token)
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, fmt.Errorf("find user: %w", err)
	}

	if user.Status == model.StatusBlocked {
		return VerifyBlockedRemains, nil
	}

	if user.Status == model.StatusUnverified {
		if err := s.users.UpdateStatus(ctx, user.ID, model.StatusActive); err != nil {
			return 0, fmt.Errorf("update status: %w", err)
		}
	}

	return VerifyOK, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) ListAll(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(ctx)
}

// BulkAction applies an administrative action to a set of account IDs in one
// store statement. deleteUnverified ignores the ID list on purpose: it is a
// safety rail restricted to unverified rows, not a general filter.
func (s *userService) BulkAction(ctx context.Context, actorID uint, ids []uint, action string) (*BulkResult, error) {
	var (
		affected int64
		message  string
		err      error
	)

	switch action {
	case ActionBlock:
		affected, err = s.users.BulkUpdateStatus(ctx, ids, model.StatusBlocked)
		message = fmt.Sprintf("Blocked users: %d", affected)
	case ActionUnblock:
		affected, err = s.users.BulkUpdateStatus(ctx, ids, model.StatusActive)
		message = fmt.Sprintf("Unblocked users: %d", affected)
	case ActionDelete:
		affected, err = s.users.BulkDelete(ctx, ids)
		message = fmt.Sprintf("Deleted users: %d", affected)
	case ActionDeleteUnverified:
		affected, err = s.users.DeleteByStatus(ctx, model.StatusUnverified)
		message = fmt.Sprintf("Deleted unverified users: %d", affected)
	default:
		return nil, apperrors.ErrInvalidAction
	}
	if err != nil {
		return nil, fmt.Errorf("bulk %s: %w", action, err)
	}

	result := &BulkResult{
		Message:       message,
		AffectedCount: affected,
	}
	for _, id := range ids {
		if id == actorID {
			result.CurrentUserAffected = true
			break
		}
	}
	return result, nil
}
