package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alumninet/alumninet-be/internal/models"
)

// ErrInvalidCredentials is the single failure returned for a bad login,
// whether the email is unknown or the password is wrong. Keeping the two
// cases indistinguishable prevents account enumeration.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
}

// UserService provides business logic for account lookup and authentication.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var avatar sql.NullString
	row := s.db.QueryRow("SELECT id, name, email, role, avatar FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	user.Avatar = avatar.String
	return user, nil
}

// getUserByEmail retrieves a user by email, including the password hash.
func (s *UserService) getUserByEmail(email string) (models.User, error) {
	var user models.User
	var avatar sql.NullString
	row := s.db.QueryRow("SELECT id, name, email, role, avatar, password_hash FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &avatar, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return models.User{}, err
	}
	user.Avatar = avatar.String
	return user, nil
}

// CreateUser inserts a new account, hashing the provisioning password. Used
// by the seed importer; there is no registration endpoint.
func (s *UserService) CreateUser(id, name, email, role, avatar, password string) (models.User, error) {
	if id == "" {
		id = uuid.New().String()
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:     id,
		Name:   name,
		Email:  email,
		Role:   role,
		Avatar: avatar,
	}

	_, err = s.db.Exec(
		"INSERT INTO users(id, name, email, role, avatar, password_hash) VALUES(?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.Role, user.Avatar, string(hashedPassword))
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CountUsers reports how many accounts exist; the seed importer uses it to
// decide whether the database needs provisioning.
func (s *UserService) CountUsers() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// Authenticate verifies a user's credentials. Both an unknown email and a
// wrong password fail with ErrInvalidCredentials.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.getUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
