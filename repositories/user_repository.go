package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/config"
	"storefront/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = `id, name, email, password, phone, address, answer, role, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password, phone, address, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.Phone, user.Address, user.Answer, user.Role, now, now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user := &models.User{}
	err := config.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Phone, &user.Address, &user.Answer, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmailAndAnswer resolves a user only when both the email and the
// stored security answer match, for the password reset flow. No match yields
// (nil, nil), not an error.
func (r *UserRepository) FindByEmailAndAnswer(ctx context.Context, email, answer string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND answer = $2`

	user := &models.User{}
	err := config.DB.QueryRow(ctx, query, email, answer).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Phone, &user.Address, &user.Answer, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user := &models.User{}
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Phone, &user.Address, &user.Answer, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context, page, limit int) ([]models.User, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := config.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := config.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Password,
			&user.Phone, &user.Address, &user.Answer, &user.Role, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET name=$1, email=$2, phone=$3, address=$4, role=$5, updated_at=$6 WHERE id=$7`
	_, err := config.DB.Exec(ctx, query,
		user.Name, user.Email, user.Phone, user.Address, user.Role, time.Now(), user.ID,
	)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, hashedPassword string) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE users SET password=$1, updated_at=$2 WHERE id=$3`,
		hashedPassword, time.Now(), id,
	)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
