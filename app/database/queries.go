package database

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/matti7866/api-sub001/app/models"
)

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone, ''), role_id, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND deleted_at IS NULL AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.RoleID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone, ''), role_id, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.RoleID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetRoleByID(db *sql.DB, roleID string) (*models.Role, error) {
	role := &models.Role{}
	query := `SELECT id, name, is_active, created_at, updated_at FROM roles WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, roleID).Scan(&role.ID, &role.Name, &role.IsActive, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return role, nil
}

// HasPermission checks the row-level permission flag for a role on a
// resource. Action is one of select, insert, update, delete.
func HasPermission(db *sql.DB, roleID, resource, action string) (bool, error) {
	var column string
	switch action {
	case "select":
		column = "can_select"
	case "insert":
		column = "can_insert"
	case "update":
		column = "can_update"
	case "delete":
		column = "can_delete"
	default:
		return false, nil
	}

	var allowed bool
	query := `SELECT ` + column + ` FROM role_permissions WHERE role_id = $1 AND resource = $2`
	err := db.QueryRow(query, roleID, resource).Scan(&allowed)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return allowed, nil
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

// CreateUser inserts a user with the named role. Used by the bootstrap
// command, not exposed over HTTP.
func CreateUser(db *sql.DB, user *models.User, roleName string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var roleID string
	err = tx.QueryRow(`SELECT id FROM roles WHERE name = $1 AND deleted_at IS NULL`, roleName).Scan(&roleID)
	if err != nil {
		return err
	}

	user.ID = uuid.New().String()
	err = tx.QueryRow(`INSERT INTO users (id, email, password, first_name, last_name, phone, role_id, is_active)
					   VALUES ($1, $2, $3, $4, $5, $6, $7, true)
					   RETURNING created_at`,
		user.ID, user.Email, user.Password, user.FirstName, user.LastName, user.Phone, roleID,
	).Scan(&user.CreatedAt)
	if err != nil {
		return err
	}
	user.RoleID = roleID

	return tx.Commit()
}
