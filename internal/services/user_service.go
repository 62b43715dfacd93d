package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/accounts-be/internal/auth"
	"github.com/isdelr/accounts-be/internal/models"
	"github.com/isdelr/accounts-be/internal/validation"
)

var (
	// ErrEmailInUse is returned when registration finds the email already taken.
	ErrEmailInUse = errors.New("email already in use")
	// ErrDuplicateEmail is returned when the insert itself hits the unique
	// index on email. This is the authoritative duplicate signal; the
	// lookup preceding the insert only catches the common case early.
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrDuplicateUsername is returned when the insert hits the unique
	// index on username.
	ErrDuplicateUsername = errors.New("duplicate username")
	// ErrInvalidCredentials is returned for any failed login. It is the
	// same error whether the username is unknown or the password is wrong,
	// so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a lookup finds no matching record.
	ErrUserNotFound = errors.New("user not found")
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, email, password string) (models.User, error)
	Authenticate(username, password string) (models.User, string, error)
	GetUserByID(id int64) (models.User, error)
}

// UserService implements registration and login on top of the users table.
type UserService struct {
	db     *sql.DB
	issuer *auth.TokenIssuer
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, issuer *auth.TokenIssuer) *UserService {
	return &UserService{db: db, issuer: issuer}
}

// Register validates the input, hashes the password and inserts the new
// user. The plaintext password is never stored or logged.
func (s *UserService) Register(username, email, password string) (models.User, error) {
	if err := validation.Username(username); err != nil {
		return models.User{}, err
	}
	if err := validation.Email(email); err != nil {
		return models.User{}, err
	}
	if err := validation.Password(password); err != nil {
		return models.User{}, err
	}

	if _, err := s.getUserByEmail(email); err == nil {
		return models.User{}, ErrEmailInUse
	} else if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.Exec("INSERT INTO users(username, email, password_hash) VALUES(?, ?, ?)",
		username, email, hash)
	if err != nil {
		// Two racing registrations can both pass the lookup above; the
		// unique index decides the winner and the loser lands here.
		if dupErr := duplicateError(err); dupErr != nil {
			return models.User{}, dupErr
		}
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// Authenticate verifies a user's credentials and issues a session token.
func (s *UserService) Authenticate(username, password string) (models.User, string, error) {
	if err := validation.Username(username); err != nil {
		return models.User{}, "", err
	}
	if password == "" {
		return models.User{}, "", &validation.FieldError{Field: "password", Reason: "must not be empty"}
	}

	user, err := s.getUserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, token, nil
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// getUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) getUserByEmail(email string) (models.User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?", email))
}

// getUserByUsername retrieves a single user by their username, including the password hash.
func (s *UserService) getUserByUsername(username string) (models.User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?", username))
}

func (s *UserService) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// duplicateError maps a SQLite unique-constraint violation to the domain
// error for the column that collided. The driver exposes no typed constraint
// error, so the failed constraint is read out of the message, which names it
// as "users.email" or "users.username".
func duplicateError(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	switch {
	case strings.Contains(msg, "users.email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "users.username"):
		return ErrDuplicateUsername
	}
	return nil
}
