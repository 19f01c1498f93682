package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleSeeker    UserRole = "seeker"
	RoleRecruiter UserRole = "recruiter"
)

func (r UserRole) Valid() bool {
	return r == RoleSeeker || r == RoleRecruiter
}

// Profile is the optional profile substructure, stored embedded in the users
// row. A freshly registered user has everything here zero-valued except the
// photo URL set during registration.
type Profile struct {
	Bio                string                      `json:"bio" gorm:"column:profile_bio;size:2000"`
	Skills             datatypes.JSONSlice[string] `json:"skills" gorm:"column:profile_skills"`
	ProfilePhotoURL    string                      `json:"profilePhoto" gorm:"column:profile_photo_url;size:500"`
	ResumeURL          string                      `json:"resume" gorm:"column:profile_resume_url;size:500"`
	ResumeOriginalName string                      `json:"resumeOriginalName" gorm:"column:profile_resume_original_name;size:255"`
}

type User struct {
	ID          string   `json:"id" gorm:"primaryKey;size:36"`
	FullName    string   `json:"fullname" gorm:"not null;size:100"`
	Email       string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PhoneNumber string   `json:"phoneNumber" gorm:"not null;size:20"`
	Role        UserRole `json:"role" gorm:"not null;size:20"`

	// PasswordHash is never serialized; sanitized projections fall out of
	// the json tags for free.
	PasswordHash string `json:"-" gorm:"column:password_hash;not null;size:255"`

	Profile Profile `json:"profile" gorm:"embedded"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
