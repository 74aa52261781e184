package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

// userColumns is the select list shared by every user query. Profile,
// dealership and province snapshots are joined in so a single row carries
// the whole denormalized user the identity endpoints return.
const userColumns = `
	u.id, u.username, u.email, u.first_name, u.last_name, u.phone,
	u.password_hash, u.manager_id, u.chat_enabled, u.active,
	u.last_login_at, u.created_at, u.updated_at,
	p.id, p.code, p.name,
	d.id, d.name, d.address, d.phone, d.email, d.province, d.active,
	pr.id, pr.code, pr.name`

const userJoins = `
	FROM users u
	LEFT JOIN profiles p ON p.id = u.profile_id
	LEFT JOIN dealerships d ON d.id = u.dealership_id
	LEFT JOIN provinces pr ON pr.id = u.province_id`

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates the MySQL-backed UserRepository.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, first_name, last_name, phone,
			password_hash, chat_enabled, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.Phone, user.PasswordHash, user.ChatEnabled, user.Active, now, now,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, domain.NewAlreadyExistsError("User", user.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return r.GetByID(ctx, user.ID)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+userColumns+userJoins+" WHERE u.username = ? AND u.active = 1", username)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("User", username)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+userColumns+userJoins+" WHERE u.id = ?", userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("User", userID)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT"+userColumns+userJoins+" ORDER BY u.username LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		passwordHash, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("User", userID)
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = ? WHERE id = ?", time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*entity.User, error) {
	var (
		u entity.User

		managerID   sql.NullString
		lastLoginAt sql.NullTime

		profileID, profileCode, profileName          sql.NullString
		dealerID, dealerName, dealerAddr             sql.NullString
		dealerPhone, dealerEmail, dealerProv         sql.NullString
		dealerActive                                 sql.NullBool
		provinceID, provinceCode, provinceName       sql.NullString
	)

	err := s.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Phone,
		&u.PasswordHash, &managerID, &u.ChatEnabled, &u.Active,
		&lastLoginAt, &u.CreatedAt, &u.UpdatedAt,
		&profileID, &profileCode, &profileName,
		&dealerID, &dealerName, &dealerAddr,
		&dealerPhone, &dealerEmail, &dealerProv, &dealerActive,
		&provinceID, &provinceCode, &provinceName,
	)
	if err != nil {
		return nil, err
	}

	u.ManagerID = managerID.String
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		u.LastLoginAt = &t
	}
	if profileID.Valid {
		u.Profile = &entity.ProfileInfo{
			ID:   profileID.String,
			Code: profileCode.String,
			Name: profileName.String,
		}
	}
	if dealerID.Valid {
		u.Dealership = &entity.DealershipInfo{
			ID:       dealerID.String,
			Name:     dealerName.String,
			Address:  dealerAddr.String,
			Phone:    dealerPhone.String,
			Email:    dealerEmail.String,
			Province: dealerProv.String,
			Active:   dealerActive.Bool,
		}
	}
	if provinceID.Valid {
		u.Province = &entity.ProvinceInfo{
			ID:   provinceID.String,
			Code: provinceCode.String,
			Name: provinceName.String,
		}
	}

	return &u, nil
}
