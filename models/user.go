package models

import "time"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// IsPrivileged reports whether role may read other users' data.
func IsPrivileged(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

type User struct {
	UID               string    `json:"uid" bson:"uid" firestore:"uid"`
	Email             string    `json:"email" bson:"email" firestore:"email"`
	Name              string    `json:"name" bson:"name" firestore:"name"`
	Role              string    `json:"role" bson:"role" firestore:"role"`
	IsActive          bool      `json:"isActive" bson:"isActive" firestore:"isActive"`
	JoinedDate        time.Time `json:"joinedDate" bson:"joinedDate" firestore:"joinedDate"`
	LastLogin         time.Time `json:"lastLogin" bson:"lastLogin" firestore:"lastLogin"`
	ProfilePictureURL *string   `json:"profilePictureUrl" bson:"profilePictureUrl" firestore:"profilePictureUrl"`
}

// Credential is the identity provider's private record for an email address.
type Credential struct {
	UID          string    `json:"uid" bson:"uid" firestore:"uid"`
	Email        string    `json:"email" bson:"email" firestore:"email"`
	PasswordHash string    `json:"passwordHash" bson:"passwordHash" firestore:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type EmployeeDetail struct {
	User        User         `json:"user"`
	Commitments []Commitment `json:"commitments"`
	Reports     []Report     `json:"reports"`
}

type CreateEmployeeRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=employee manager admin"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=employee manager admin"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
