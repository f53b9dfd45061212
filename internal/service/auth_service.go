// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/generator"
	"cyberwallet-api/internal/repository"
	"cyberwallet-api/internal/security"
	"cyberwallet-api/internal/validate"
	"cyberwallet-api/pkg/db"

	"github.com/google/uuid"
)

const (
	activationTokenTTL = 30 * time.Minute
	resetTokenTTL      = time.Hour
)

// dummyHash is a bcrypt hash of a throwaway value. Login verifies against it
// when the identifier is unknown so both branches cost one hash comparison.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// RegisterInput carries the raw registration form. Fields arrive as the
// client sent them; the service normalizes and validates.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Username     string
	Password     string
	DNI          string
	Street       string
	StreetNumber int
	BirthDate    string
	Gender       string
	Phone        string
	CountryID    int64
	ProvinceID   int64
}

// RegisterResult is returned on successful registration. No session token is
// issued at this point.
type RegisterResult struct {
	Alias string
	CVU   string
}

// LoginResult carries the issued session token plus the caller's wallet
// coordinates.
type LoginResult struct {
	AccessToken string
	TokenType   string
	Alias       string
	CVU         string
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
// Changing the password requires CurrentPassword.
type ProfilePatch struct {
	Email           *string
	Username        *string
	Street          *string
	StreetNumber    *int
	Phone           *string
	CountryID       *int64
	ProvinceID      *int64
	CurrentPassword *string
	NewPassword     *string
}

// Mailer delivers credential-lifecycle mail. The production implementation is
// a stub that only logs.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
	SendActivationCode(ctx context.Context, email, code string) error
}

// AuthService defines the interface for authentication and credential
// lifecycle business logic.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Authenticate(ctx context.Context, identifier, password string) (*LoginResult, error)
	Logout(ctx context.Context, bearer string) error
	Activate(ctx context.Context, code string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, email, newPassword, confirmPassword string) error
	ChangePassword(ctx context.Context, email, current, newPassword, confirmPassword string) error
	UpdateProfile(ctx context.Context, email string, patch ProfilePatch) (*domain.User, error)
	Profile(ctx context.Context, email string) (*domain.User, error)
	DeleteAccount(ctx context.Context, email string) error
	CleanupRevokedTokens(ctx context.Context) (int64, error)
}

// authService implements the AuthService interface.
type authService struct {
	dbBeginner     db.DBTxBeginner
	dbExecutor     repository.DBExecutor
	userRepo       repository.UserRepository
	walletRepo     repository.WalletRepository
	activationRepo repository.ActivationTokenRepository
	resetRepo      repository.PasswordResetTokenRepository
	revokedRepo    repository.RevokedTokenRepository
	referenceRepo  repository.ReferenceRepository
	aliasGen       *generator.AliasGenerator
	tokens         *security.TokenManager
	mailer         Mailer
	beginTx        db.BeginTxFunc
	commitTx       db.CommitTxFunc
	rollbackTx     db.RollbackTxFunc
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	activationRepo repository.ActivationTokenRepository,
	resetRepo repository.PasswordResetTokenRepository,
	revokedRepo repository.RevokedTokenRepository,
	referenceRepo repository.ReferenceRepository,
	aliasGen *generator.AliasGenerator,
	tokens *security.TokenManager,
	mailer Mailer,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) AuthService {
	return &authService{
		dbBeginner:     dbBeginner,
		dbExecutor:     dbExecutor,
		userRepo:       userRepo,
		walletRepo:     walletRepo,
		activationRepo: activationRepo,
		resetRepo:      resetRepo,
		revokedRepo:    revokedRepo,
		referenceRepo:  referenceRepo,
		aliasGen:       aliasGen,
		tokens:         tokens,
		mailer:         mailer,
		beginTx:        beginTx,
		commitTx:       commitTx,
		rollbackTx:     rollbackTx,
	}
}

// Register validates the form, checks uniqueness, resolves the location
// references and persists user plus wallet in one transaction. The activation
// token is issued inside the same commit.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if err := validateRegisterInput(&input); err != nil {
		return nil, err
	}

	input.Email = validate.NormalizeEmail(input.Email)
	input.Username = validate.NormalizeUsername(input.Username)

	if taken, err := s.userRepo.ExistsByEmail(ctx, s.dbExecutor, input.Email); err != nil {
		return nil, fmt.Errorf("register: failed to check email: %w", err)
	} else if taken {
		return nil, apperr.New(apperr.CodeDuplicateEmail, "")
	}
	if taken, err := s.userRepo.ExistsByUsername(ctx, s.dbExecutor, input.Username); err != nil {
		return nil, fmt.Errorf("register: failed to check username: %w", err)
	} else if taken {
		return nil, apperr.New(apperr.CodeDuplicateUsername, "")
	}
	if taken, err := s.userRepo.ExistsByDNI(ctx, s.dbExecutor, input.DNI); err != nil {
		return nil, fmt.Errorf("register: failed to check dni: %w", err)
	} else if taken {
		return nil, apperr.New(apperr.CodeDuplicateDNI, "")
	}

	if err := s.checkLocation(ctx, input.CountryID, input.ProvinceID); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: failed to hash password: %w", err)
	}
	birth, err := validate.BirthDate(input.BirthDate, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	gender, err := validate.Gender(input.Gender)
	if err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:  validate.NormalizePersonName(input.FirstName),
		LastName:   validate.NormalizePersonName(input.LastName),
		Email:      input.Email,
		Username:   input.Username,
		Password:   hash,
		DNI:        input.DNI,
		Street:     validate.NormalizeStreet(input.Street),
		Number:     input.StreetNumber,
		BirthDate:  birth,
		Gender:     gender,
		Phone:      input.Phone,
		CountryID:  input.CountryID,
		ProvinceID: input.ProvinceID,
		Status:     domain.UserStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, err
	}

	alias, err := s.aliasGen.Generate(ctx, func(ctx context.Context, candidate string) (bool, error) {
		return s.walletRepo.ExistsByAlias(ctx, txExecutor, candidate)
	})
	if err != nil {
		return nil, err
	}
	cvu, err := generator.GenerateCVU(ctx, func(ctx context.Context, candidate string) (bool, error) {
		return s.walletRepo.ExistsByCVU(ctx, txExecutor, candidate)
	})
	if err != nil {
		return nil, err
	}

	wallet := domain.NewWallet(user.ID, cvu, alias)
	if err := s.walletRepo.CreateWallet(ctx, txExecutor, wallet); err != nil {
		return nil, err
	}

	code, err := generator.GenerateActivationCode()
	if err != nil {
		return nil, fmt.Errorf("register: failed to generate activation code: %w", err)
	}
	activation := &domain.ActivationToken{
		UserID:    user.ID,
		Token:     code,
		ExpiresAt: now.Add(activationTokenTTL),
		CreatedAt: now,
	}
	if err := s.activationRepo.CreateActivationToken(ctx, txExecutor, activation); err != nil {
		return nil, fmt.Errorf("register: failed to store activation token: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("register: failed to commit transaction: %w", err)
	}

	// Mail delivery is best effort; registration already committed.
	_ = s.mailer.SendActivationCode(ctx, user.Email, code)

	return &RegisterResult{Alias: alias, CVU: cvu}, nil
}

// Authenticate verifies credentials by email or username and issues a session
// token. An unknown identifier still pays a hash comparison so the failure
// path is timing-equivalent, and surfaces the same INVALID_CREDENTIALS.
func (s *authService) Authenticate(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))

	var (
		user *domain.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetUserByEmail(ctx, s.dbExecutor, identifier)
	} else {
		user, err = s.userRepo.GetUserByUsername(ctx, s.dbExecutor, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			security.CheckPassword(dummyHash, password)
			return nil, apperr.New(apperr.CodeInvalidCredentials, "")
		}
		return nil, fmt.Errorf("authenticate: failed to look up user: %w", err)
	}

	if !security.CheckPassword(user.Password, password) {
		return nil, apperr.New(apperr.CodeInvalidCredentials, "")
	}
	if user.Status != domain.UserStatusActive {
		return nil, apperr.New(apperr.CodeAccountInactive, "")
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("authenticate: failed to issue token: %w", err)
	}

	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.CodeWalletNotFound, "")
		}
		return nil, fmt.Errorf("authenticate: failed to load wallet: %w", err)
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		Alias:       wallet.Alias,
		CVU:         wallet.CVU,
	}, nil
}

// Logout adds the bearer token to the revocation set. The insert is
// synchronous so any request arriving after the response observes it.
func (s *authService) Logout(ctx context.Context, bearer string) error {
	token := security.StripBearer(bearer)
	if token == "" {
		return apperr.New(apperr.CodeInvalidToken, "")
	}

	expiry, err := s.tokens.Expiry(token)
	if err != nil {
		return err
	}

	revoked, err := s.revokedRepo.IsTokenRevoked(ctx, s.dbExecutor, token)
	if err != nil {
		return fmt.Errorf("logout: failed to check revocation: %w", err)
	}
	if revoked {
		return apperr.New(apperr.CodeAlreadyLoggedOut, "")
	}

	entry := &domain.RevokedToken{
		Token:     token,
		RevokedAt: time.Now().UTC(),
		ExpiresAt: expiry,
	}
	if err := s.revokedRepo.RevokeToken(ctx, s.dbExecutor, entry); err != nil {
		return fmt.Errorf("logout: failed to revoke token: %w", err)
	}
	return nil
}

// Activate consumes an activation code. Activating an already ACTIVE user
// succeeds without touching the user row; the code is spent either way, so a
// second call with the same code fails.
func (s *authService) Activate(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	token, err := s.activationRepo.GetActivationToken(ctx, s.dbExecutor, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.CodeInvalidToken, "")
		}
		return fmt.Errorf("activate: failed to look up token: %w", err)
	}
	if token.Used || token.Expired(time.Now().UTC()) {
		return apperr.New(apperr.CodeInvalidToken, "")
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("activate: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("activate: transaction controller does not implement DBExecutor")
	}

	if err := s.activationRepo.MarkActivationTokenUsed(ctx, txExecutor, token.ID); err != nil {
		return fmt.Errorf("activate: failed to consume token: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, txExecutor, token.UserID)
	if err != nil {
		return fmt.Errorf("activate: failed to load user %d: %w", token.UserID, err)
	}
	if user.Status != domain.UserStatusActive {
		user.Status = domain.UserStatusActive
		if err := s.userRepo.UpdateUser(ctx, txExecutor, user); err != nil {
			return fmt.Errorf("activate: failed to activate user %d: %w", user.ID, err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("activate: failed to commit transaction: %w", err)
	}
	return nil
}

// ForgotPassword issues a reset token when the email is known. The return
// value never depends on whether the user exists.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = validate.NormalizeEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("forgot-password: failed to look up user: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("forgot-password: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("forgot-password: transaction controller does not implement DBExecutor")
	}

	if err := s.resetRepo.InvalidateResetTokensForUser(ctx, txExecutor, user.ID); err != nil {
		return fmt.Errorf("forgot-password: failed to invalidate prior tokens: %w", err)
	}

	now := time.Now().UTC()
	token := &domain.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(resetTokenTTL),
	}
	if err := s.resetRepo.CreatePasswordResetToken(ctx, txExecutor, token); err != nil {
		return fmt.Errorf("forgot-password: failed to store token: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("forgot-password: failed to commit transaction: %w", err)
	}

	// Best effort; the caller's response is identical either way.
	_ = s.mailer.SendPasswordReset(ctx, user.Email, token.Token)
	return nil
}

// ResetPassword validates and consumes a reset token, then stores the new
// password hash.
func (s *authService) ResetPassword(ctx context.Context, tokenValue, email, newPassword, confirmPassword string) error {
	if newPassword == "" || newPassword != confirmPassword {
		return apperr.New(apperr.CodeValidationError, "Las contraseñas no coinciden.")
	}
	if err := validate.Password(newPassword); err != nil {
		return err
	}

	email = validate.NormalizeEmail(email)

	token, err := s.resetRepo.GetPasswordResetToken(ctx, s.dbExecutor, strings.TrimSpace(tokenValue))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.CodeInvalidToken, "")
		}
		return fmt.Errorf("reset-password: failed to look up token: %w", err)
	}
	if token.Used || token.Expired(time.Now().UTC()) {
		return apperr.New(apperr.CodeInvalidToken, "")
	}

	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, token.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.CodeInvalidToken, "")
		}
		return fmt.Errorf("reset-password: failed to load user %d: %w", token.UserID, err)
	}
	if user.Email != email {
		return apperr.New(apperr.CodeInvalidToken, "")
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("reset-password: failed to hash password: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("reset-password: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("reset-password: transaction controller does not implement DBExecutor")
	}

	if err := s.resetRepo.MarkPasswordResetTokenUsed(ctx, txExecutor, token.ID); err != nil {
		return fmt.Errorf("reset-password: failed to consume token: %w", err)
	}
	user.Password = hash
	if err := s.userRepo.UpdateUser(ctx, txExecutor, user); err != nil {
		return fmt.Errorf("reset-password: failed to update user %d: %w", user.ID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("reset-password: failed to commit transaction: %w", err)
	}
	return nil
}

// ChangePassword re-hashes after verifying the current password.
func (s *authService) ChangePassword(ctx context.Context, email, current, newPassword, confirmPassword string) error {
	if current == "" || newPassword == "" || newPassword != confirmPassword {
		return apperr.New(apperr.CodeValidationError, "Las contraseñas no coinciden.")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, validate.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.CodeUserNotFound, "")
		}
		return fmt.Errorf("change-password: failed to load user: %w", err)
	}
	if !security.CheckPassword(user.Password, current) {
		return apperr.New(apperr.CodeInvalidCredentials, "La contraseña actual es incorrecta.")
	}
	if err := validate.Password(newPassword); err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("change-password: failed to hash password: %w", err)
	}
	user.Password = hash
	if err := s.userRepo.UpdateUser(ctx, s.dbExecutor, user); err != nil {
		return fmt.Errorf("change-password: failed to update user %d: %w", user.ID, err)
	}
	return nil
}

// UpdateProfile applies a partial update. Every submitted field runs the same
// validator as registration.
func (s *authService) UpdateProfile(ctx context.Context, email string, patch ProfilePatch) (*domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, validate.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.CodeUserNotFound, "")
		}
		return nil, fmt.Errorf("update-profile: failed to load user: %w", err)
	}

	if patch.Email != nil {
		next := validate.NormalizeEmail(*patch.Email)
		if err := validate.Email(next); err != nil {
			return nil, err
		}
		if next != user.Email {
			if taken, err := s.userRepo.ExistsByEmail(ctx, s.dbExecutor, next); err != nil {
				return nil, fmt.Errorf("update-profile: failed to check email: %w", err)
			} else if taken {
				return nil, apperr.New(apperr.CodeDuplicateEmail, "")
			}
			user.Email = next
		}
	}
	if patch.Username != nil {
		next := validate.NormalizeUsername(*patch.Username)
		if err := validate.Username(next); err != nil {
			return nil, err
		}
		if next != user.Username {
			if taken, err := s.userRepo.ExistsByUsername(ctx, s.dbExecutor, next); err != nil {
				return nil, fmt.Errorf("update-profile: failed to check username: %w", err)
			} else if taken {
				return nil, apperr.New(apperr.CodeDuplicateUsername, "")
			}
			user.Username = next
		}
	}
	if patch.Street != nil {
		if err := validate.Street(*patch.Street); err != nil {
			return nil, err
		}
		user.Street = validate.NormalizeStreet(*patch.Street)
	}
	if patch.StreetNumber != nil {
		if err := validate.StreetNumber(*patch.StreetNumber); err != nil {
			return nil, err
		}
		user.Number = *patch.StreetNumber
	}
	if patch.Phone != nil {
		if err := validate.Phone(*patch.Phone); err != nil {
			return nil, err
		}
		user.Phone = *patch.Phone
	}

	countryID := user.CountryID
	provinceID := user.ProvinceID
	if patch.CountryID != nil {
		countryID = *patch.CountryID
	}
	if patch.ProvinceID != nil {
		provinceID = *patch.ProvinceID
	}
	if countryID != user.CountryID || provinceID != user.ProvinceID {
		// A country change without a new province keeps the old province only
		// while it still belongs to the new country.
		if err := s.checkLocation(ctx, countryID, provinceID); err != nil {
			return nil, err
		}
		user.CountryID = countryID
		user.ProvinceID = provinceID
	}

	if patch.NewPassword != nil {
		if patch.CurrentPassword == nil || !security.CheckPassword(user.Password, *patch.CurrentPassword) {
			return nil, apperr.New(apperr.CodeInvalidCredentials, "La contraseña actual es incorrecta.")
		}
		if err := validate.Password(*patch.NewPassword); err != nil {
			return nil, err
		}
		hash, err := security.HashPassword(*patch.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("update-profile: failed to hash password: %w", err)
		}
		user.Password = hash
	}

	if err := s.userRepo.UpdateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Profile returns the authenticated user's snapshot.
func (s *authService) Profile(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, validate.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.CodeUserNotFound, "")
		}
		return nil, fmt.Errorf("profile: failed to load user: %w", err)
	}
	return user, nil
}

// DeleteAccount soft deletes the user. The row stays for the journal's
// foreign keys; reads stop returning it.
func (s *authService) DeleteAccount(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, validate.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.CodeUserNotFound, "")
		}
		return fmt.Errorf("delete-account: failed to load user: %w", err)
	}
	if err := s.userRepo.SoftDeleteUser(ctx, s.dbExecutor, user.ID); err != nil {
		return fmt.Errorf("delete-account: failed to soft delete user %d: %w", user.ID, err)
	}
	return nil
}

// CleanupRevokedTokens purges revocation entries whose JWT already expired.
func (s *authService) CleanupRevokedTokens(ctx context.Context) (int64, error) {
	return s.revokedRepo.DeleteExpiredRevokedTokens(ctx, s.dbExecutor, time.Now().UTC())
}

// checkLocation verifies the country exists and the province belongs to it.
func (s *authService) checkLocation(ctx context.Context, countryID, provinceID int64) error {
	exists, err := s.referenceRepo.CountryExists(ctx, s.dbExecutor, countryID)
	if err != nil {
		return fmt.Errorf("failed to check country %d: %w", countryID, err)
	}
	if !exists {
		return apperr.New(apperr.CodeNotFound, "El país indicado no existe.")
	}
	exists, err = s.referenceRepo.ProvinceExists(ctx, s.dbExecutor, provinceID, countryID)
	if err != nil {
		return fmt.Errorf("failed to check province %d: %w", provinceID, err)
	}
	if !exists {
		return apperr.New(apperr.CodeValidationError, "La provincia no pertenece al país indicado.")
	}
	return nil
}

// validateRegisterInput runs every field rule and accumulates the failures so
// the client gets all of them in one response. A weak password short-circuits
// with its own code.
func validateRegisterInput(input *RegisterInput) error {
	var fields []apperr.FieldError

	collect := func(field string, err error) {
		if err != nil {
			var appErr *apperr.Error
			if errors.As(err, &appErr) {
				fields = append(fields, apperr.FieldError{Field: field, Message: appErr.Detail})
				return
			}
			fields = append(fields, apperr.FieldError{Field: field, Message: err.Error()})
		}
	}

	collect("nombre", validate.PersonName(input.FirstName, 30))
	collect("apellido", validate.PersonName(input.LastName, 40))
	collect("email", validate.Email(input.Email))
	collect("username", validate.Username(input.Username))
	collect("dni", validate.DNI(input.DNI))
	collect("calle", validate.Street(input.Street))
	collect("numero", validate.StreetNumber(input.StreetNumber))
	collect("telefono", validate.Phone(input.Phone))
	if _, err := validate.BirthDate(input.BirthDate, time.Now().UTC()); err != nil {
		collect("fechaNacimiento", err)
	}
	if _, err := validate.Gender(input.Gender); err != nil {
		collect("genero", err)
	}

	if err := validate.Password(input.Password); err != nil {
		return err
	}
	if len(fields) > 0 {
		return apperr.WithFields(fields)
	}
	return nil
}
