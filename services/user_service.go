package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resourcehub/database"
	"resourcehub/models"
	"resourcehub/utils"
)

type UserService struct {
	userCollection       *mongo.Collection
	departmentCollection *mongo.Collection
}

type UserFilters struct {
	Search string
	Role   string
}

func NewUserService() *UserService {
	return &UserService{
		userCollection:       database.GetCollection(database.UsersCollection),
		departmentCollection: database.GetCollection(database.DepartmentsCollection),
	}
}

// GetUsers returns paginated active users with filters. Co-manager only;
// gated at the route.
func (us *UserService) GetUsers(page, limit int, filters *UserFilters) ([]models.User, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"is_active": true}

	if filters.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": filters.Search, "$options": "i"}},
			{"email": bson.M{"$regex": filters.Search, "$options": "i"}},
		}
	}
	if filters.Role != "" {
		filter["role"] = filters.Role
	}

	skip := (page - 1) * limit
	cursor, err := us.userCollection.Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := us.userCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return users, int(total), nil
}

// GetUser returns an active user by id.
func (us *UserService) GetUser(userID primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := us.userCollection.FindOne(ctx, bson.M{"_id": userID, "is_active": true}).Decode(&user)
	if err != nil {
		return nil, utils.NewNotFoundError("user")
	}

	return &user, nil
}

// UpdateProfile edits the caller's own profile fields.
func (us *UserService) UpdateProfile(userID primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"updated_at": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}

	if req.DepartmentID != "" {
		deptID, err := utils.StringToObjectID(req.DepartmentID)
		if err != nil {
			return nil, utils.NewValidationError("invalid department id")
		}
		count, err := us.departmentCollection.CountDocuments(ctx, bson.M{"_id": deptID, "is_active": true})
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, utils.NewNotFoundError("department")
		}
		update["department_id"] = deptID
	}

	var user models.User
	err := us.userCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID, "is_active": true},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, utils.NewNotFoundError("user")
	}

	return &user, nil
}

// ChangeRole sets a user's role. Co-manager only; gated at the route.
func (us *UserService) ChangeRole(userID primitive.ObjectID, role string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch role {
	case models.RoleVisitor, models.RoleMember, models.RoleCoManager:
	default:
		return nil, utils.NewValidationError("invalid role", "role must be one of: visitor, member, co-manager")
	}

	var user models.User
	err := us.userCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, utils.NewNotFoundError("user")
	}

	return &user, nil
}

// DeactivateUser soft-deletes an account. The record is retained; it is
// excluded from default reads and can no longer authenticate.
func (us *UserService) DeactivateUser(userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := us.userCollection.UpdateOne(ctx,
		bson.M{"_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("user")
	}

	return nil
}
