package userRepo

import (
	"healthhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserFilter narrows user listings.
type UserFilter struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

// BucketCount is one bucket of a grouping aggregation over users.
type BucketCount struct {
	Key   string `bson:"_id" json:"key"`
	Count int    `bson:"count" json:"count"`
}

// UserStats summarizes the account population for the admin dashboard.
type UserStats struct {
	TotalUsers    int           `json:"totalUsers"`
	ActiveUsers   int           `json:"activeUsers"`
	InactiveUsers int           `json:"inactiveUsers"`
	ByRole        []BucketCount `json:"byRole"`
	ByGender      []BucketCount `json:"byGender"`
	Recent        []models.User `json:"recentUsers"`
}

// UserRepository defines data access for user documents.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll(filter UserFilter) ([]models.User, int64, error)
	SetTokenHash(id, tokenHash string) error
	SetLastLogin(id string) error
	Stats() (*UserStats, error)
}
