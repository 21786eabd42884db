package types

// User roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the stored account record. Password holds the bcrypt hash and
// must never cross the HTTP boundary; handlers serialize UserView instead.
type User struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"password,omitempty" bson:"password"`
	FullName string `json:"fullName" bson:"full_name"`
	Phone    string `json:"phone" bson:"phone"`
	Role     string `json:"role" bson:"role"`
	IsActive bool   `json:"isActive" bson:"is_active"`
}

// UserView is the response projection of a User with credentials stripped.
type UserView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// View projects a User into its serializable form.
func (u User) View() UserView {
	return UserView{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
