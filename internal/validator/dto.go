package validator

// RegisterRequest carries the fields of the registration form. The file
// attachment travels separately through the multipart decoder.
type RegisterRequest struct {
	FullName    string `form:"fullname" json:"fullname" validate:"required,max=100"`
	Email       string `form:"email" json:"email" validate:"required,email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber" validate:"required,phone_number"`
	Password    string `form:"password" json:"password" validate:"required,min=6"`
	Role        string `form:"role" json:"role" validate:"required,oneof=seeker recruiter"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=seeker recruiter"`
}

// UpdateProfileRequest models partial update by presence: a nil pointer means
// the field was not supplied and must keep its stored value. Present-but-empty
// strings are treated as absent as well; the service skips them.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullname" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,phone_number"`
	Bio         *string `json:"bio" validate:"omitempty,max=2000"`

	// Skills is the raw comma-separated form value; the service splits it.
	Skills *string `json:"skills"`
}
