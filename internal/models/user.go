package models

// Role is the account type fixed at registration.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleEmployer
}

// User is the identity returned by the session endpoint.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
