package repositories

import (
	"context"
	"time"

	"boutique-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, system_id, first_name, last_name, email, passcode_hash, role,
        is_temp_password, temp_password_expiry, last_login,
        totp_secret IS NOT NULL AND totp_secret <> '' as totp_enabled,
        created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.SystemID, &u.FirstName, &u.LastName, &u.Email, &u.PasscodeHash,
		&u.Role, &u.IsTempPassword, &u.TempPasswordExpiry, &u.LastLogin, &u.TOTPEnabled,
		&u.CreatedAt, &u.UpdatedAt)
	return &u, err
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(system_id, first_name, last_name, email, passcode_hash, role,
             is_temp_password, temp_password_expiry)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		u.SystemID, u.FirstName, u.LastName, u.Email, u.PasscodeHash, u.Role,
		u.IsTempPassword, u.TempPasswordExpiry,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email)=LOWER($1)`, email)
	return scanUser(row)
}

func (r *UserRepository) ListBySystem(ctx context.Context, systemID int) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE system_id=$1 ORDER BY created_at ASC`, systemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *models.User) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET first_name=$1, last_name=$2, email=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		u.FirstName, u.LastName, u.Email, u.ID)
	return err
}

// UpdatePasscode replaces the hash and clears the temp-password flags,
// since any passcode change counts as claiming the account.
func (r *UserRepository) UpdatePasscode(ctx context.Context, id int, passcodeHash string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET passcode_hash=$1, is_temp_password=FALSE, temp_password_expiry=NULL,
             updated_at=CURRENT_TIMESTAMP
         WHERE id=$2`,
		passcodeHash, id)
	return err
}

// SetTempPasscode stores a temporary passcode hash with its expiry.
func (r *UserRepository) SetTempPasscode(ctx context.Context, id int, passcodeHash string, expiry time.Time) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET passcode_hash=$1, is_temp_password=TRUE, temp_password_expiry=$2,
             updated_at=CURRENT_TIMESTAMP
         WHERE id=$3`,
		passcodeHash, expiry, id)
	return err
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET last_login=CURRENT_TIMESTAMP WHERE id=$1`, id)
	return err
}

func (r *UserRepository) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_secret=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, secret, id)
	return err
}

func (r *UserRepository) GetTOTPSecret(ctx context.Context, id int) (string, error) {
	var secret string
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(totp_secret, '') FROM users WHERE id=$1`, id).Scan(&secret)
	return secret, err
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *UserRepository) CountBySystem(ctx context.Context, systemID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE system_id=$1`, systemID).Scan(&count)
	return count, err
}
