package domain

// Role is the account type a user registered with.
type Role string

const (
	RoleCaregiver    Role = "caregiver"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

// User is the authenticated account.
type User struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// Credentials is the login form input.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Validate checks the credentials before they are sent to the gateway.
func (c Credentials) Validate() error {
	return validationError(validate.Struct(c))
}
