package user

import (
	"testing"

	userRepo "healthhub/database/repository/user"
	"healthhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeUserRepo struct {
	userRepo.UserRepository
	user        *models.User
	tokenHashes map[string]string
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.user = user
	return nil
}

func (f *fakeUserRepo) SetTokenHash(id, tokenHash string) error {
	if f.tokenHashes == nil {
		f.tokenHashes = map[string]string{}
	}
	f.tokenHashes[id] = tokenHash
	return nil
}

func storedPatient() *models.User {
	return &models.User{
		ID:        "usr-1",
		FirstName: "Jane",
		LastName:  "Wambui",
		Email:     "jane@example.com",
		Role:      models.RolePatient,
		IsActive:  true,
	}
}

func TestAdminUpdateChangesRole(t *testing.T) {
	repo := &fakeUserRepo{user: storedPatient()}
	svc := &DefaultUserService{Repo: repo}

	updated, err := svc.AdminUpdate("usr-1", models.RoleDoctor, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDoctor, updated.Role)
	assert.True(t, updated.IsActive)
}

func TestAdminUpdateDeactivationRevokesToken(t *testing.T) {
	repo := &fakeUserRepo{user: storedPatient(), tokenHashes: map[string]string{"usr-1": "deadbeef"}}
	svc := &DefaultUserService{Repo: repo}

	inactive := false
	updated, err := svc.AdminUpdate("usr-1", "", &inactive)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "", repo.tokenHashes["usr-1"])
}

func TestAdminUpdateRejectsUnknownRole(t *testing.T) {
	repo := &fakeUserRepo{user: storedPatient()}
	svc := &DefaultUserService{Repo: repo}

	_, err := svc.AdminUpdate("usr-1", "superuser", nil)
	assert.Error(t, err)
	assert.Equal(t, models.RolePatient, repo.user.Role)
}

func TestAdminUpdateUnknownUser(t *testing.T) {
	svc := &DefaultUserService{Repo: &fakeUserRepo{}}

	_, err := svc.AdminUpdate("ghost", models.RoleDoctor, nil)
	assert.Error(t, err)
}
