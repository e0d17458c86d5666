package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, is_verified, is_staff, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone,
		&u.Role, &u.IsVerified, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, role, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Role, u.IsVerified)

	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) SetVerified(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET is_verified = TRUE, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

type OTPRepository struct {
	pool *pgxpool.Pool
}

func NewOTPRepository(pool *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{pool: pool}
}

func (r *OTPRepository) Create(ctx context.Context, v *entity.OTPVerification) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO otp_verifications (user_id, email, otp_code, verification_type, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, v.UserID, v.Email, v.OTPCode, v.VerificationType, v.ExpiresAt)

	return translate(row.Scan(&v.ID, &v.CreatedAt))
}

// Consume is a single conditional UPDATE so two concurrent submissions of the
// same code cannot both succeed.
func (r *OTPRepository) Consume(ctx context.Context, code string, vt entity.VerificationType) (*entity.OTPVerification, error) {
	v := &entity.OTPVerification{}
	row := r.pool.QueryRow(ctx, `
		UPDATE otp_verifications
		SET is_used = TRUE
		WHERE id = (
			SELECT id FROM otp_verifications
			WHERE otp_code = $1 AND verification_type = $2 AND is_used = FALSE AND expires_at > now()
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING id, user_id, email, otp_code, verification_type, created_at, expires_at, is_used
	`, code, vt)

	if err := row.Scan(&v.ID, &v.UserID, &v.Email, &v.OTPCode, &v.VerificationType,
		&v.CreatedAt, &v.ExpiresAt, &v.IsUsed); err != nil {
		return nil, translate(err)
	}
	return v, nil
}

var _ repository.OTPRepository = (*OTPRepository)(nil)
