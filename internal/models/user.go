package models

// Role represents operator roles in the system
type Role string

const (
	RoleOperator       Role = "OPERATOR"
	RoleTransitManager Role = "TRANSIT MANAGER"
)

// Operator is a person who drives trips or manages the fleet.
type Operator struct {
	ID           int64  `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`
	Role         Role   `bson:"role" json:"role"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents an operator registration request
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token    string   `json:"token"`
	Operator Operator `json:"operator"`
}

// Claims represents JWT claims
type Claims struct {
	OperatorID int64  `json:"operator_id"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Exp        int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleOperator, RoleTransitManager:
		return true
	default:
		return false
	}
}

// CanManageFleet reports whether the role may register vehicles, schedule
// maintenance and work alerts.
func (r Role) CanManageFleet() bool {
	return r == RoleTransitManager
}
