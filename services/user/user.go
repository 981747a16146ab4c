package user

import (
	"context"
	"fmt"
	"time"

	userRepo "healthhub/database/repository/user"
	"healthhub/models"
	"healthhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// RegisterRequest carries the fields accepted at signup.
type RegisterRequest struct {
	FirstName   string                  `json:"firstName" binding:"required"`
	LastName    string                  `json:"lastName" binding:"required"`
	Email       string                  `json:"email" binding:"required,email"`
	Password    string                  `json:"password" binding:"required,min=6"`
	PhoneNumber string                  `json:"phoneNumber"`
	DateOfBirth time.Time               `json:"dateOfBirth"`
	Gender      string                  `json:"gender"`
	BloodGroup  string                  `json:"bloodGroup"`
	Address     models.Address          `json:"address"`
	Emergency   models.EmergencyContact `json:"emergencyContact"`
	Role        string                  `json:"role"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	User         map[string]interface{} `json:"user"`
	Token        string                 `json:"token"`
	RefreshToken string                 `json:"refreshToken"`
}

// UserService defines business logic for account operations.
type UserService interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	Refresh(refreshToken string) (*AuthResponse, error)
	GetByID(userID string) (*models.User, error)
	UpdateProfile(user models.User) (*models.User, error)
	SetFCMToken(userID, fcmToken string) error
	List(filter userRepo.UserFilter) ([]models.User, int64, error)
	AdminUpdate(userID, role string, isActive *bool) (*models.User, error)
	Deactivate(userID string) error
	Logout(userID string) error
	Stats() (*userRepo.UserStats, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
}

// Register validates signup details, hashes the password, persists the user
// and issues tokens. Self-service signup never grants a privileged role.
func (s *DefaultUserService) Register(req RegisterRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user with email %s already exists", req.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role != models.RolePatient && role != models.RoleDoctor {
		role = models.RolePatient
	}

	now := time.Now()
	user := models.User{
		ID:               uuid.New().String(),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		PasswordHash:     string(hashedPassword),
		PhoneNumber:      req.PhoneNumber,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		BloodGroup:       req.BloodGroup,
		Address:          req.Address,
		EmergencyContact: req.Emergency,
		Role:             role,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Repo.Create(&user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.issueTokens(&user)
}

// Authenticate verifies credentials, rotates the stored token hash and
// records the login time.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user for authentication: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := s.Repo.SetLastLogin(user.ID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *DefaultUserService) Refresh(refreshToken string) (*AuthResponse, error) {
	userID, err := utils.ExtractIDFromRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("invalid refresh token")
	}
	return s.issueTokens(user)
}

// issueTokens mints an access and refresh token, stores the access token
// hash on the user record and mirrors it into the auth cache so the auth
// middleware can verify without a database read.
func (s *DefaultUserService) issueTokens(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, refreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(user.ID, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}

	if s.AuthCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.AuthCache.Set(ctx, utils.AuthCachePrefix+user.ID, tokenHash, accessTokenTTL).Err(); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to cache auth token for %s: %v", user.ID, err)
		}
	}

	return &AuthResponse{
		User:         user.PublicProfile(),
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

// GetByID returns a user by ID, excluding credential fields.
func (s *DefaultUserService) GetByID(userID string) (*models.User, error) {
	user, err := s.Repo.GetByIDWithProjection(userID, bson.M{"passwordHash": 0, "tokenHash": 0})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return user, nil
}

// UpdateProfile merges allowed profile updates and returns the stored user.
// Email, role and credentials are never updated through this path.
func (s *DefaultUserService) UpdateProfile(user models.User) (*models.User, error) {
	existing, err := s.Repo.GetByID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("user with id %s not found", user.ID)
	}

	if user.FirstName != "" {
		existing.FirstName = user.FirstName
	}
	if user.LastName != "" {
		existing.LastName = user.LastName
	}
	if user.PhoneNumber != "" {
		existing.PhoneNumber = user.PhoneNumber
	}
	if !user.DateOfBirth.IsZero() {
		existing.DateOfBirth = user.DateOfBirth
	}
	if user.Gender != "" {
		existing.Gender = user.Gender
	}
	if user.BloodGroup != "" {
		existing.BloodGroup = user.BloodGroup
	}
	if user.Address != (models.Address{}) {
		existing.Address = user.Address
	}
	if user.EmergencyContact != (models.EmergencyContact{}) {
		existing.EmergencyContact = user.EmergencyContact
	}
	if len(user.MedicalHistory.Allergies) > 0 || len(user.MedicalHistory.ChronicConditions) > 0 ||
		len(user.MedicalHistory.Medications) > 0 || len(user.MedicalHistory.Surgeries) > 0 {
		existing.MedicalHistory = user.MedicalHistory
	}
	if user.ProfilePicture != "" {
		existing.ProfilePicture = user.ProfilePicture
	}

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.GetByID(user.ID)
}

// SetFCMToken records the device token used for push notifications.
func (s *DefaultUserService) SetFCMToken(userID, fcmToken string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user with id %s not found", userID)
	}
	user.FCMToken = fcmToken
	if err := s.Repo.Update(user); err != nil {
		return fmt.Errorf("failed to store fcm token: %w", err)
	}
	return nil
}

// List returns users matching the filter. Admin only at the route level.
func (s *DefaultUserService) List(filter userRepo.UserFilter) ([]models.User, int64, error) {
	return s.Repo.GetAll(filter)
}

// AdminUpdate changes a user's role or active flag. Revoking activity also
// revokes the active token so the account locks out immediately.
func (s *DefaultUserService) AdminUpdate(userID, role string, isActive *bool) (*models.User, error) {
	if role != "" && role != models.RolePatient && role != models.RoleDoctor && role != models.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}

	if role != "" {
		user.Role = role
	}
	if isActive != nil {
		user.IsActive = *isActive
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if isActive != nil && !*isActive {
		if err := s.Logout(userID); err != nil {
			return nil, err
		}
	}
	return s.GetByID(userID)
}

// Deactivate disables an account without deleting its history.
func (s *DefaultUserService) Deactivate(userID string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user with id %s not found", userID)
	}
	user.IsActive = false
	if err := s.Repo.Update(user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return s.Logout(userID)
}

// Stats returns aggregate numbers over the account population.
func (s *DefaultUserService) Stats() (*userRepo.UserStats, error) {
	return s.Repo.Stats()
}

// Logout revokes the active token by clearing its stored hash and the auth
// cache entry.
func (s *DefaultUserService) Logout(userID string) error {
	if err := s.Repo.SetTokenHash(userID, ""); err != nil {
		return fmt.Errorf("failed to clear token hash: %w", err)
	}
	if s.AuthCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to evict auth cache for %s: %v", userID, err)
		}
	}
	return nil
}
