package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crucial707/user-api/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email
	`

	user := &models.User{PasswordHash: passwordHash}

	err := r.DB.QueryRowContext(ctx, query, name, email, passwordHash).
		Scan(&user.ID, &user.Name, &user.Email)

	if err != nil {
		return nil, fmt.Errorf("create user: %w", classify(err))
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)

	if err != nil {
		return nil, classify(err)
	}

	return user, nil
}

// ==========================
// Get By Name
// ==========================
func (r *UserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash
		FROM users
		WHERE name = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, name).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)

	if err != nil {
		return nil, classify(err)
	}

	return user, nil
}

// ==========================
// Update User
// ==========================

// Update overwrites only the non-nil fields of patch.
func (r *UserRepo) Update(ctx context.Context, id int, patch models.UserPatch) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    password_hash = COALESCE($3, password_hash)
		WHERE id = $4
		RETURNING id, name, email, password_hash
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, patch.Name, patch.Email, patch.PasswordHash, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)

	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, classify(err))
	}

	return user, nil
}

// ==========================
// Delete User
// ==========================
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, email FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
