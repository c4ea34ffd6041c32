package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the session
// lifecycle, using a UserRepository and a SessionRepository for persistence
// and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionRepository is the data-access layer for session rows, including
	// their flash-message queues.
	sessionRepository store.SessionRepository

	// uuidGenerator mints the opaque session identifiers stored in the
	// sessions table and referenced by the cookie token.
	uuidGenerator *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued session token.
	// Tokens whose issuer does not match this value are rejected on resolve.
	tokenIssuer string

	// sessionTTL controls how long a newly created session remains valid.
	sessionTTL time.Duration

	// bcryptCost is the bcrypt work factor applied when hashing passwords.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// A configured bcrypt cost below the library minimum is replaced with the
// library default, so a missing or nonsensical cost can never weaken hashing.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, sessionRepository store.SessionRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		uuidGenerator:     utils.NewUUIDGenerator(),
		tokenSignKey:      cfg.SessionSignKey,
		tokenIssuer:       cfg.SessionIssuer,
		sessionTTL:        cfg.SessionTTL,
		bcryptCost:        cost,
		logger:            logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that Username, Email and the plain-text password are all
// non-empty, hashes the password with bcrypt, and delegates persistence to
// the UserRepository. The plain-text password never reaches the store.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Username, Email or password is empty.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyTaken).
func (a *authService) RegisterUser(ctx context.Context, user models.User, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Email == "" || password == "" {
		log.Error().Str("email", user.Email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user by email and plain-text password.
//
// It looks up the account by email and compares the stored bcrypt hash with
// the supplied password.
//
// Returns the authenticated user record or:
//   - ErrInvalidCredentials for every authentication failure: empty input,
//     unknown email, or wrong password. The cases are indistinguishable to
//     the caller on purpose.
//   - A wrapped storage error if the repository lookup itself fails.
func (a *authService) Login(ctx context.Context, email string, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Warn().Str("email", email).Msg("login attempt with empty credentials")
		return models.User{}, ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn().Str("email", email).Msg("login attempt for unknown email")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Warn().
				Int64("id", foundUser.UserID).
				Str("email", email).
				Msg("wrong password")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("email", email).Msg("password comparison failed")
		return models.User{}, fmt.Errorf("password comparison failed: %w", err)
	}

	return foundUser, nil
}

// CreateSession mints a new session for the given user and issues the signed
// cookie token referencing it.
//
// A userID of zero creates an anonymous session, used only to carry flash
// messages across redirects before login. The session expires after the
// configured TTL; the token carries the same lifetime.
//
// Returns the persisted session and its token, or:
//   - A wrapped storage error if the session row cannot be created.
//   - ErrSessionTokenCreationFailed (wrapped) if signing the token fails.
func (a *authService) CreateSession(ctx context.Context, userID int64) (models.Session, models.Token, error) {
	log := logger.FromContext(ctx)

	session := models.Session{
		SessionID: a.uuidGenerator.Generate(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(a.sessionTTL),
	}

	createdSession, err := a.sessionRepository.CreateSession(ctx, session)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("session creation ended with error")
		return models.Session{}, models.Token{}, fmt.Errorf("session creation ended with error: %w", err)
	}

	token, err := utils.GenerateSessionToken(a.tokenIssuer, createdSession.SessionID, a.sessionTTL, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("session token creation failed")
		return models.Session{}, models.Token{}, fmt.Errorf("%w: %w", ErrSessionTokenCreationFailed, err)
	}

	return createdSession, token, nil
}

// ResolveSession validates a raw cookie token and loads the session it
// references, together with the owning user when the session is bound to one.
//
// Validation covers the token signature, issuer and expiry claims, the
// existence of the session row, and the row's own expiry instant. For an
// anonymous session the returned user is the zero value.
//
// Every failure is normalised to ErrSessionExpiredOrInvalid so that callers
// can treat any unresolvable cookie the same way: as an anonymous visitor.
// The underlying cause is logged server-side.
func (a *authService) ResolveSession(ctx context.Context, tokenString string) (models.Session, models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Warn().Err(err).Msg("session token validation failed")
		return models.Session{}, models.User{}, ErrSessionExpiredOrInvalid
	}

	session, err := a.sessionRepository.FindSessionByID(ctx, token.SessionID)
	if err != nil {
		log.Warn().Err(err).Str("session_id", token.SessionID).Msg("session lookup failed")
		return models.Session{}, models.User{}, ErrSessionExpiredOrInvalid
	}

	if session.IsExpired(time.Now()) {
		log.Warn().Str("session_id", session.SessionID).Msg("session is expired")
		return models.Session{}, models.User{}, ErrSessionExpiredOrInvalid
	}

	if session.IsAnonymous() {
		return session, models.User{}, nil
	}

	user, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("session_id", session.SessionID).
			Int64("user_id", session.UserID).
			Msg("session owner lookup failed")
		return models.Session{}, models.User{}, ErrSessionExpiredOrInvalid
	}

	return session, user, nil
}

// Logout deletes the session row referenced by sessionID.
//
// A session that is already gone is treated as a successful logout, so
// pressing logout twice (or after a purge) never surfaces an error.
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	if err := a.sessionRepository.DeleteSession(ctx, sessionID); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil
		}

		log.Err(err).Str("session_id", sessionID).Msg("session deletion ended with error")
		return fmt.Errorf("session deletion ended with error: %w", err)
	}

	return nil
}

// AddFlash queues a one-shot notice on the session identified by sessionID.
func (a *authService) AddFlash(ctx context.Context, sessionID string, flash models.Flash) error {
	return a.sessionRepository.AddFlash(ctx, sessionID, flash)
}

// PopFlashes returns the session's queued notices and clears the queue in
// the same operation.
func (a *authService) PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error) {
	return a.sessionRepository.PopFlashes(ctx, sessionID)
}
