package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"resourcehub/database"
	"resourcehub/models"
	"resourcehub/utils"
)

type AuthService struct {
	userCollection *mongo.Collection
}

func NewAuthService() *AuthService {
	return &AuthService{
		userCollection: database.GetCollection(database.UsersCollection),
	}
}

// Register creates a new account. New accounts start as visitors; role
// promotion is a co-manager operation.
func (as *AuthService) Register(req *models.RegisterRequest) (*models.User, *utils.TokenPair, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := as.userCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, utils.NewConflictError("email already registered", 1)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashedPassword,
		Role:      models.RoleVisitor,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := as.userCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, nil, utils.NewConflictError("email already registered", 1)
		}
		return nil, nil, err
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Login verifies credentials and issues a token pair.
func (as *AuthService) Login(req *models.LoginRequest) (*models.User, *utils.TokenPair, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := as.userCollection.FindOne(ctx, bson.M{"email": req.Email, "is_active": true}).Decode(&user)
	if err != nil {
		return nil, nil, utils.NewAuthenticationError("invalid email or password")
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, nil, utils.NewAuthenticationError("invalid email or password")
	}

	now := time.Now()
	_, err = as.userCollection.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"last_login_at": now, "updated_at": now}},
	)
	if err != nil {
		return nil, nil, err
	}
	user.LastLoginAt = &now

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, nil, err
	}

	return &user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (as *AuthService) Refresh(refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, utils.NewAuthenticationError("invalid or expired refresh token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err = as.userCollection.FindOne(ctx, bson.M{"_id": claims.UserID, "is_active": true}).Decode(&user)
	if err != nil {
		return nil, utils.NewAuthenticationError("account no longer active")
	}

	return utils.GenerateTokenPair(user.ID, user.Email, user.Role)
}

// ChangePassword verifies the current password before replacing it.
func (as *AuthService) ChangePassword(userID primitive.ObjectID, req *models.ChangePasswordRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := as.userCollection.FindOne(ctx, bson.M{"_id": userID, "is_active": true}).Decode(&user)
	if err != nil {
		return utils.NewNotFoundError("user")
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return utils.NewValidationError("current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	_, err = as.userCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": hashedPassword, "updated_at": time.Now()}},
	)
	return err
}
