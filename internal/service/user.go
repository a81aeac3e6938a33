package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/screenscout/internal/config"
	"github.com/iliyamo/screenscout/internal/events"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
	"github.com/iliyamo/screenscout/internal/utils"
)

var (
	// ErrInvalidCredentials covers unknown login and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInactive is returned for a deactivated account.
	ErrInactive = errors.New("account is deactivated")
	// ErrInvalidRefresh covers unknown, expired and revoked refresh tokens.
	ErrInvalidRefresh = errors.New("invalid refresh token")
	// ErrForbidden is returned when an account operation targets an owner.
	ErrForbidden = errors.New("forbidden")
)

// TokenPair is what signin and refresh hand back to the client.
type TokenPair struct {
	User    model.User
	Access  utils.AccessToken
	Refresh utils.RefreshToken
}

// ProfileUpdate carries a partial update of the caller's own account.
type ProfileUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserService covers signup, signin, token rotation and account
// administration.
type UserService struct {
	Deps
	cfg    config.Config
	users  *repository.UserRepo
	tokens *repository.TokenRepo
}

func NewUserService(d Deps, cfg config.Config) *UserService {
	return &UserService{
		Deps:   d,
		cfg:    cfg,
		users:  repository.NewUserRepo(d.DB),
		tokens: repository.NewTokenRepo(d.DB),
	}
}

func checkUsername(u string) (string, error) {
	u = strings.TrimSpace(u)
	if n := utf8.RuneCountInString(u); n < 3 || n > 50 {
		return "", invalid("username must be 3 to 50 characters")
	}
	if strings.ContainsAny(u, " \t@") {
		return "", invalid("username must not contain spaces or @")
	}
	return u, nil
}

func checkEmail(e string) (string, error) {
	e = repository.NormalizeEmail(e)
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", invalid("email is not a valid address")
	}
	return e, nil
}

func checkPassword(p string) error {
	if len(p) < utils.MinPasswordLength {
		return invalid("password must be at least %d characters", utils.MinPasswordLength)
	}
	return nil
}

// taken reports ErrAlreadyExists when username or email belongs to an
// account other than self.
func (s *UserService) taken(ctx context.Context, username, email string, self uint64) error {
	if u, err := s.users.GetByUsername(ctx, username); err == nil && u.ID != self {
		return repository.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if u, err := s.users.GetByEmail(ctx, email); err == nil && u.ID != self {
		return repository.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// Signup creates an active Member account.
func (s *UserService) Signup(ctx context.Context, username, email, password string) (model.User, error) {
	username, err := checkUsername(username)
	if err != nil {
		return model.User{}, err
	}
	if email, err = checkEmail(email); err != nil {
		return model.User{}, err
	}
	if err := checkPassword(password); err != nil {
		return model.User{}, err
	}
	if err := s.taken(ctx, username, email, 0); err != nil {
		return model.User{}, err
	}
	id, err := s.users.Create(ctx, username, email, password, model.RoleMember, s.cfg.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	s.Log.Info("user signed up", "user_id", id)
	s.publish(ctx, events.NewCatalogEvent(events.EntityUser, events.ActionCreated, id, id, s.now()))
	return s.users.GetByID(ctx, id)
}

// Signin accepts an email or a username as login.
func (s *UserService) Signin(ctx context.Context, login, password string) (TokenPair, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return TokenPair{}, invalid("login and password are required")
	}
	var (
		u   model.User
		err error
	)
	if strings.Contains(login, "@") {
		u, err = s.users.GetByEmail(ctx, login)
	} else {
		u, err = s.users.GetByUsername(ctx, login)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return TokenPair{}, ErrInactive
	}
	return s.issue(ctx, u)
}

// Refresh validates the raw refresh token, revokes it and issues a new pair.
func (s *UserService) Refresh(ctx context.Context, raw string) (TokenPair, error) {
	hash := utils.HashRefreshRaw(strings.TrimSpace(raw))
	userID, err := s.tokens.ValidateRefresh(ctx, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return TokenPair{}, ErrInvalidRefresh
	}
	if err != nil {
		return TokenPair{}, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return TokenPair{}, ErrInvalidRefresh
	}
	if err != nil {
		return TokenPair{}, err
	}
	if !u.IsActive {
		return TokenPair{}, ErrInactive
	}
	if err := s.tokens.RevokeByHash(ctx, hash); err != nil {
		return TokenPair{}, err
	}
	return s.issue(ctx, u)
}

// Logout revokes one refresh token when raw is given, otherwise every
// token of userID.
func (s *UserService) Logout(ctx context.Context, userID uint64, raw string) error {
	if raw = strings.TrimSpace(raw); raw != "" {
		return s.tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw))
	}
	if userID == 0 {
		return invalid("refresh_token is required")
	}
	return s.tokens.RevokeAllForUser(ctx, userID)
}

func (s *UserService) issue(ctx context.Context, u model.User) (TokenPair, error) {
	access, err := utils.NewAccessToken(s.cfg.JWTSecret, u.ID, u.Role, s.cfg.AccessTTLMin)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := utils.NewRefreshToken(s.cfg.RefreshTTLDays)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{User: u, Access: access, Refresh: refresh}, nil
}

func (s *UserService) Get(ctx context.Context, id uint64) (model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, p model.Page) ([]model.User, error) {
	if err := checkPage(p); err != nil {
		return nil, err
	}
	return s.users.List(ctx, p)
}

// UpdateProfile changes the caller's username, email or password.  A
// password change revokes every refresh token of the account.
func (s *UserService) UpdateProfile(ctx context.Context, id uint64, in ProfileUpdate) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if in.Username != nil {
		if u.Username, err = checkUsername(*in.Username); err != nil {
			return model.User{}, err
		}
	}
	if in.Email != nil {
		if u.Email, err = checkEmail(*in.Email); err != nil {
			return model.User{}, err
		}
	}
	if in.Password != nil {
		if err := checkPassword(*in.Password); err != nil {
			return model.User{}, err
		}
		if u.PasswordHash, err = utils.HashPassword(*in.Password, s.cfg.BcryptCost); err != nil {
			return model.User{}, err
		}
	}
	if err := s.taken(ctx, u.Username, u.Email, id); err != nil {
		return model.User{}, err
	}
	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return model.User{}, err
	}
	if in.Password != nil {
		if err := s.tokens.RevokeAllForUser(ctx, id); err != nil {
			return model.User{}, err
		}
	}
	s.publish(ctx, events.NewCatalogEvent(events.EntityUser, events.ActionUpdated, id, id, s.now()))
	return s.users.GetByID(ctx, id)
}

// SetRole grants Admin, Manager or Member.  Owner cannot be granted and an
// owner's role cannot be changed through the API.
func (s *UserService) SetRole(ctx context.Context, id uint64, role model.Role) (model.User, error) {
	role = model.Role(strings.ToUpper(strings.TrimSpace(string(role))))
	if !role.Valid() || role == model.RoleOwner {
		return model.User{}, invalid("role must be one of ADMIN, MANAGER, MEMBER")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if u.Role == model.RoleOwner {
		return model.User{}, ErrForbidden
	}
	if err := s.users.SetRole(ctx, id, role); err != nil {
		return model.User{}, err
	}
	s.Log.Info("user role changed", "user_id", id, "role", string(role), "by", ActorFrom(ctx))
	s.publish(ctx, s.event(ctx, events.EntityUser, events.ActionUpdated, id))
	return s.users.GetByID(ctx, id)
}

// SetActive enables or disables an account; owners cannot be disabled.
// Disabling revokes the account's refresh tokens.
func (s *UserService) SetActive(ctx context.Context, id uint64, active bool) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if u.Role == model.RoleOwner && !active {
		return model.User{}, ErrForbidden
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return model.User{}, err
	}
	if !active {
		if err := s.tokens.RevokeAllForUser(ctx, id); err != nil {
			return model.User{}, err
		}
	}
	s.Log.Info("user active flag changed", "user_id", id, "active", active, "by", ActorFrom(ctx))
	s.publish(ctx, s.event(ctx, events.EntityUser, events.ActionUpdated, id))
	return s.users.GetByID(ctx, id)
}

// EnsureOwner creates the bootstrap owner unless an account with email
// already exists.  It reports whether an account was created.
func (s *UserService) EnsureOwner(ctx context.Context, username, email, password string) (bool, error) {
	username, err := checkUsername(username)
	if err != nil {
		return false, fmt.Errorf("owner account: %w", err)
	}
	if email, err = checkEmail(email); err != nil {
		return false, fmt.Errorf("owner account: %w", err)
	}
	if err := checkPassword(password); err != nil {
		return false, fmt.Errorf("owner account: %w", err)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	id, err := s.users.Create(ctx, username, email, password, model.RoleOwner, s.cfg.BcryptCost)
	if err != nil {
		return false, err
	}
	s.Log.Info("owner account created", "user_id", id)
	return true, nil
}
