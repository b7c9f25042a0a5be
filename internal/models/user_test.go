package models_test

import (
	"github.com/shulebooks/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestUserPassword() {
	user := models.User{Email: "admin@example.com"}
	require.Nil(suite.T(), user.SetPassword("hunter2"))

	assert.True(suite.T(), user.CheckPassword("hunter2"))
	assert.False(suite.T(), user.CheckPassword("Hunter2"))
	assert.NotContains(suite.T(), user.PasswordHash, "hunter2")
}

func (suite *TestSuiteStandard) TestUserEmailLowercased() {
	user := models.User{Email: " Admin@Example.com "}
	require.Nil(suite.T(), user.SetPassword("hunter2"))
	require.Nil(suite.T(), models.DB.Create(&user).Error)

	assert.Equal(suite.T(), "admin@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	user := models.User{Email: "admin@example.com"}
	require.Nil(suite.T(), user.SetPassword("hunter2"))
	require.Nil(suite.T(), models.DB.Create(&user).Error)

	other := models.User{Email: "admin@example.com"}
	require.Nil(suite.T(), other.SetPassword("hunter2"))
	err := models.DB.Create(&other).Error
	assert.ErrorIs(suite.T(), err, models.ErrUserEmailNotUnique)
}

func (suite *TestSuiteStandard) TestEnsureAdmin() {
	require.Nil(suite.T(), models.EnsureAdmin(models.DB, "admin@example.com", "Admin", "hunter2"))

	// A second run with another password leaves the user untouched
	require.Nil(suite.T(), models.EnsureAdmin(models.DB, "admin@example.com", "Admin", "other-password"))

	var users []models.User
	require.Nil(suite.T(), models.DB.Find(&users).Error)
	require.Len(suite.T(), users, 1)
	assert.True(suite.T(), users[0].CheckPassword("hunter2"))
}
