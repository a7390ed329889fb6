package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resourcehub/database"
	"resourcehub/models"
	"resourcehub/utils"
)

// AuthMiddleware validates the bearer token and attaches the user to the
// request context. The role claim in the token is authoritative for the
// token's lifetime; only the account's active flag is re-checked.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c)
		if !ok {
			utils.AbortWithError(c, 401, "Invalid or missing authorization token")
			return
		}

		user, err := getUserByID(claims.UserID)
		if err != nil {
			utils.AbortWithError(c, 401, "User not found")
			return
		}

		if !user.IsActive {
			utils.AbortWithError(c, 401, "Account is deactivated")
			return
		}

		// Token role wins over the stored role until the token expires.
		user.Role = claims.Role

		utils.SetUserInContext(c, user)
		c.Set("token_claims", claims)

		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is present
// and passes anonymously otherwise. Used on public read routes so the
// policy can still see the actor when there is one.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c)
		if !ok {
			c.Next()
			return
		}

		user, err := getUserByID(claims.UserID)
		if err != nil || !user.IsActive {
			c.Next()
			return
		}

		user.Role = claims.Role
		utils.SetUserInContext(c, user)
		c.Set("token_claims", claims)
		c.Next()
	}
}

func parseBearerToken(c *gin.Context) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ValidateToken(tokenParts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}

func getUserByID(userID primitive.ObjectID) (*models.User, error) {
	collection := database.GetCollection(database.UsersCollection)
	var user models.User

	err := collection.FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
