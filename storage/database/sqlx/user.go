package sqlxrepos

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/radianlabs/precalc/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

// userRow is the app_user table shape.
type userRow struct {
	ID           string         `db:"id"`
	Username     string         `db:"username"`
	Email        null.String    `db:"email"`
	FirstName    null.String    `db:"first_name"`
	LastName     null.String    `db:"last_name"`
	IsActive     bool           `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	PasswordHash null.Bytes     `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastLogin    null.Time      `db:"last_login"`
}

func (repo userRepository) row(usr user.User) userRow {
	return userRow{
		ID:           usr.ID,
		Username:     usr.Username,
		Email:        null.NewString(usr.Email, usr.Email != ""),
		FirstName:    null.NewString(usr.FirstName, usr.FirstName != ""),
		LastName:     null.NewString(usr.LastName, usr.LastName != ""),
		IsActive:     usr.IsActive,
		Roles:        usr.Roles,
		PasswordHash: null.BytesFrom(usr.PasswordHash),
		CreatedAt:    usr.CreatedAt.UTC(),
		UpdatedAt:    usr.UpdatedAt.UTC(),
		LastLogin:    null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (repo userRepository) unrow(row userRow) user.User {
	return user.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email.String,
		FirstName:    row.FirstName.String,
		LastName:     row.LastName.String,
		IsActive:     row.IsActive,
		Roles:        row.Roles,
		PasswordHash: row.PasswordHash.Bytes,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		LastLogin:    row.LastLogin.Time,
	}
}

func (repo userRepository) unrowSlice(rows []userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, repo.unrow(row))
	}
	return users
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

const selectUser = `
SELECT id, username, email, first_name, last_name, is_active, roles, password_hash, created_at, updated_at, last_login
FROM app_user`

func (repo userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	args := []interface{}{username}
	query := `SELECT username, email FROM app_user WHERE (username = $1`
	if email != "" {
		args = append(args, email)
		query += ` OR email = $2`
	}
	query += `)`

	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			args = append(args, u.ID)
			ids = append(ids, "$"+strconv.Itoa(len(args)))
		}
		query += ` AND id NOT IN (` + strings.Join(ids, ",") + `)`
	}
	query += ` LIMIT 1`

	var row struct {
		Username string      `db:"username"`
		Email    null.String `db:"email"`
	}
	if err := repo.db.Get(&row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return errors.Wrap(err, "checking user uniqueness")
	}
	if row.Username == username {
		return user.ErrUsernameExists
	}
	return user.ErrEmailExists
}

func (repo userRepository) CreateUser(usr user.User) (user.User, error) {
	row := repo.row(usr)
	_, err := repo.db.NamedExec(`
		INSERT INTO app_user (id, username, email, first_name, last_name, is_active, roles, password_hash, created_at, updated_at, last_login)
		VALUES (:id, :username, :email, :first_name, :last_name, :is_active, :roles, :password_hash, :created_at, :updated_at, :last_login)`,
		row,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return repo.unrow(row), nil
}

func (repo userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []userRow
	if err := repo.db.Select(&rows, selectUser+` ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return repo.unrowSlice(rows), nil
}

func (repo userRepository) GetUserByID(id string) (user.User, error) {
	var row userRow
	if err := repo.db.Get(&row, selectUser+` WHERE id = $1`, id); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by id")
	}
	return repo.unrow(row), nil
}

func (repo userRepository) GetUserByUsername(username string) (user.User, error) {
	var row userRow
	if err := repo.db.Get(&row, selectUser+` WHERE lower(username) = lower($1)`, username); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by username")
	}
	return repo.unrow(row), nil
}

func (repo userRepository) GetUserByEmail(email string) (user.User, error) {
	var row userRow
	if err := repo.db.Get(&row, selectUser+` WHERE lower(email) = lower($1)`, email); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by email")
	}
	return repo.unrow(row), nil
}

func (repo userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	var row userRow
	query := selectUser + ` WHERE lower(username) = lower($1) OR lower(email) = lower($1)`
	if err := repo.db.Get(&row, query, username); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by username or email")
	}
	return repo.unrow(row), nil
}

func (repo userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	query := selectUser + ` WHERE 1=1`
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		query += ` AND (username ILIKE ` + p +
			` OR first_name ILIKE ` + p +
			` OR last_name ILIKE ` + p +
			` OR email ILIKE ` + p + `)`
	}
	if filter.Roles != nil {
		query += ` AND roles && ` + arg(pq.StringArray(filter.Roles))
	}
	if filter.IsActive != nil {
		query += ` AND is_active = ` + arg(*filter.IsActive)
	}
	if !filter.CreatedFrom.IsZero() {
		query += ` AND created_at >= ` + arg(filter.CreatedFrom.UTC())
	}
	if !filter.CreatedTo.IsZero() {
		query += ` AND created_at <= ` + arg(filter.CreatedTo.UTC())
	}
	query += ` ORDER BY created_at`

	var rows []userRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return repo.unrowSlice(rows), nil
}

func (repo userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	existing, err := repo.GetUserByID(usr.ID)
	if err != nil {
		return user.User{}, err
	}

	if usr.Username != "" {
		existing.Username = usr.Username
	}
	if usr.Email != "" {
		existing.Email = usr.Email
	}
	if usr.FirstName != "" {
		existing.FirstName = usr.FirstName
	}
	if usr.LastName != "" {
		existing.LastName = usr.LastName
	}
	if usr.Roles != nil {
		existing.Roles = usr.Roles
	}
	if len(usr.PasswordHash) > 0 {
		existing.PasswordHash = usr.PasswordHash
	}
	if !usr.LastLogin.IsZero() {
		existing.LastLogin = usr.LastLogin
	}
	if isActive != nil {
		existing.IsActive = *isActive
	}
	existing.UpdatedAt = time.Now().UTC()

	row := repo.row(existing)
	_, err = repo.db.NamedExec(`
		UPDATE app_user
		SET username = :username, email = :email, first_name = :first_name, last_name = :last_name,
		    is_active = :is_active, roles = :roles, password_hash = :password_hash,
		    updated_at = :updated_at, last_login = :last_login
		WHERE id = :id`,
		row,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return repo.unrow(row), nil
}

func (repo userRepository) DeleteUsersByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM app_user WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting users")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
