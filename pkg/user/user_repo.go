package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := "INSERT INTO users (uid, display_name, default_hourly_rate) VALUES (?, ?, ?)"
	result, err := u.db.ExecContext(ctx, query, user.Uid, user.DisplayName, user.DefaultHourlyRate)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, fmt.Errorf("could not execute query: %w", err)
	}
	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := "SELECT id, uid, display_name, default_hourly_rate FROM users WHERE id = ?"
	var user User
	err := u.db.QueryRowContext(ctx, query, id).
		Scan(&user.Id, &user.Uid, &user.DisplayName, &user.DefaultHourlyRate)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := "SELECT id, uid, display_name, default_hourly_rate FROM users WHERE uid = ?"
	var user User
	err := u.db.QueryRowContext(ctx, query, uid).
		Scan(&user.Id, &user.Uid, &user.DisplayName, &user.DefaultHourlyRate)
	if errors.Is(err, sql.ErrNoRows) {
		log.Infof("user with uid %s not found", uid)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := "UPDATE users SET display_name = ?, default_hourly_rate = ? WHERE id = ?"
	result, err := u.db.ExecContext(ctx, query, user.DisplayName, user.DefaultHourlyRate, userId)
	if err != nil {
		log.Errorf("failed to update user: %v", err)
		return User{}, fmt.Errorf("could not execute query: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return User{}, ErrUserNotFound
	}
	return u.GetUser(ctx, userId)
}
