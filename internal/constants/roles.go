package constants

import (
	"database/sql/driver"
	"fmt"
)

// UserRole is the role stored on a user account and carried in access tokens.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool { return r == RoleUser || r == RoleAdmin }

// Scan implements the sql.Scanner interface
func (r *UserRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = UserRole(v)
	case []byte:
		*r = UserRole(v)
	default:
		return fmt.Errorf("UserRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r UserRole) Value() (driver.Value, error) { return string(r), nil }
