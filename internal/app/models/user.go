package models

import (
	"fmt"
	"strings"
	"time"
)

// AchievementCategory classifies a user achievement
type AchievementCategory string

const (
	AchievementAcademic  AchievementCategory = "academic"
	AchievementSports    AchievementCategory = "sports"
	AchievementCultural  AchievementCategory = "cultural"
	AchievementTechnical AchievementCategory = "technical"
	AchievementOther     AchievementCategory = "other"
)

// SkillLevel grades a user skill
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// Achievement is an embedded profile entry owned by the user
type Achievement struct {
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	Date           *time.Time          `json:"date,omitempty"`
	Category       AchievementCategory `json:"category,omitempty"`
	CertificateURL string              `json:"certificateUrl,omitempty"`
}

// Skill is an embedded profile entry owned by the user
type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level,omitempty"`
}

// SocialLinks holds a user's external profile links
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// User defines the user model based on the 'users' table
type User struct {
	ID               int64         `json:"id" db:"id"`
	Name             string        `json:"name" db:"name"`
	Email            string        `json:"email" db:"email"`
	EnrollmentNumber *string       `json:"enrollmentNumber,omitempty" db:"enrollment_number"`
	Password         string        `json:"-" db:"password"` // bcrypt hash, empty for federated accounts
	Role             Role          `json:"role" db:"role"`
	Program          string        `json:"program,omitempty" db:"program"`
	Branch           string        `json:"branch,omitempty" db:"branch"`
	Semester         *int          `json:"semester,omitempty" db:"semester"`
	Bio              string        `json:"bio" db:"bio"`
	GoogleID         *string       `json:"-" db:"google_id"`
	ProfilePicture   string        `json:"profilePicture,omitempty" db:"profile_picture"`
	LastLogin        *time.Time    `json:"lastLogin,omitempty" db:"last_login"`
	Achievements     []Achievement `json:"achievements" db:"achievements"`
	Skills           []Skill       `json:"skills" db:"skills"`
	SocialLinks      SocialLinks   `json:"socialLinks" db:"social_links"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`
}

// IsFederated reports whether the account was created through Google OAuth.
func (u *User) IsFederated() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// ProgramCode maps a program name to its two-letter enrollment code.
func ProgramCode(program string) string {
	switch program {
	case "B.Tech":
		return "BT"
	case "M.Tech":
		return "MT"
	default:
		return "PH"
	}
}

// BranchCode derives the two-letter enrollment code from a branch name.
func BranchCode(branch string) string {
	code := branch
	if len(code) > 2 {
		code = code[:2]
	}
	return strings.ToUpper(code)
}

// EnrollmentPrefix builds the YY+program+branch prefix shared by all students
// admitted to the same program and branch in the same year.
func EnrollmentPrefix(year int, program, branch string) string {
	return fmt.Sprintf("%02d%s%s", year%100, ProgramCode(program), BranchCode(branch))
}

// FormatEnrollmentNumber renders the full enrollment number for the seq-th
// student of a year/program/branch cohort.
func FormatEnrollmentNumber(year int, program, branch string, seq int) string {
	return fmt.Sprintf("%s%04d", EnrollmentPrefix(year, program, branch), seq)
}
