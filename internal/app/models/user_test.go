package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramCode(t *testing.T) {
	assert.Equal(t, "BT", ProgramCode("B.Tech"))
	assert.Equal(t, "MT", ProgramCode("M.Tech"))
	assert.Equal(t, "PH", ProgramCode("PhD"))
	assert.Equal(t, "PH", ProgramCode("anything else"))
}

func TestBranchCode(t *testing.T) {
	assert.Equal(t, "CO", BranchCode("Computer Science"))
	assert.Equal(t, "EL", BranchCode("Electrical Engineering"))
	assert.Equal(t, "CE", BranchCode("ce"))
}

func TestEnrollmentPrefix(t *testing.T) {
	assert.Equal(t, "24BTCO", EnrollmentPrefix(2024, "B.Tech", "Computer Science"))
	assert.Equal(t, "09MTEL", EnrollmentPrefix(2009, "M.Tech", "Electrical Engineering"))
}

func TestFormatEnrollmentNumber(t *testing.T) {
	assert.Equal(t, "24BTCO0001", FormatEnrollmentNumber(2024, "B.Tech", "Computer Science", 1))
	assert.Equal(t, "24BTCO0042", FormatEnrollmentNumber(2024, "B.Tech", "Computer Science", 42))
}

func TestUser_IsFederated(t *testing.T) {
	googleID := "google-sub-123"
	empty := ""

	assert.True(t, (&User{GoogleID: &googleID}).IsFederated())
	assert.False(t, (&User{GoogleID: &empty}).IsFederated())
	assert.False(t, (&User{}).IsFederated())
}
