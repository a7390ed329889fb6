package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resourcehub/models"
	"resourcehub/utils"
)

func TestAuthorizePublicOperations(t *testing.T) {
	publicOps := []Operation{
		OpResourceList, OpResourceGet, OpResourceDownload,
		OpFolderList, OpFolderGet,
		OpDepartmentList, OpDepartmentGet,
		OpStatsView,
	}

	for _, op := range publicOps {
		assert.NoError(t, Authorize(nil, op, nil), "anonymous %s should be allowed", op)
	}
}

func TestAuthorizeAnonymousRejected(t *testing.T) {
	gated := []Operation{
		OpResourceCreate, OpResourceUpdate, OpResourceDelete,
		OpResourceFavorite, OpFolderCreate, OpDepartmentCreate,
		OpUserManage, OpFileRegister,
	}

	for _, op := range gated {
		err := Authorize(nil, op, nil)
		assert.True(t, utils.IsAuthentication(err), "anonymous %s should get 401, got %v", op, err)
	}
}

func TestAuthorizeRoleLadder(t *testing.T) {
	visitor := &Actor{ID: primitive.NewObjectID(), Role: models.RoleVisitor}
	member := &Actor{ID: primitive.NewObjectID(), Role: models.RoleMember}
	coManager := &Actor{ID: primitive.NewObjectID(), Role: models.RoleCoManager}

	tests := []struct {
		name    string
		actor   *Actor
		op      Operation
		allowed bool
	}{
		{"visitor can favorite", visitor, OpResourceFavorite, true},
		{"visitor cannot create resources", visitor, OpResourceCreate, false},
		{"visitor cannot create folders", visitor, OpFolderCreate, false},
		{"member can create resources", member, OpResourceCreate, true},
		{"member can create folders", member, OpFolderCreate, true},
		{"member cannot create departments", member, OpDepartmentCreate, false},
		{"member cannot manage users", member, OpUserManage, false},
		{"co-manager can create departments", coManager, OpDepartmentCreate, true},
		{"co-manager can manage users", coManager, OpUserManage, true},
		{"unknown role is rejected", &Actor{ID: primitive.NewObjectID(), Role: "admin"}, OpResourceCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.op, nil)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, utils.IsAuthorization(err), "expected 403, got %v", err)
			}
		})
	}
}

func TestAuthorizeOwnership(t *testing.T) {
	owner := &Actor{ID: primitive.NewObjectID(), Role: models.RoleMember}
	other := &Actor{ID: primitive.NewObjectID(), Role: models.RoleMember}
	coManager := &Actor{ID: primitive.NewObjectID(), Role: models.RoleCoManager}
	owned := &Target{OwnerID: owner.ID}

	ownerOnlyOps := []Operation{
		OpResourceUpdate, OpResourceDelete, OpResourceAttach, OpResourceDetach,
		OpFolderUpdate, OpFolderDelete, OpFileDelete,
	}

	for _, op := range ownerOnlyOps {
		assert.NoError(t, Authorize(owner, op, owned), "owner %s", op)
		assert.True(t, utils.IsAuthorization(Authorize(other, op, owned)), "non-owner %s", op)
		assert.NoError(t, Authorize(coManager, op, owned), "co-manager %s", op)
	}
}

func TestAuthorizeOwnerlessTarget(t *testing.T) {
	member := &Actor{ID: primitive.NewObjectID(), Role: models.RoleMember}
	coManager := &Actor{ID: primitive.NewObjectID(), Role: models.RoleCoManager}

	// Without a recorded owner only a co-manager may mutate.
	err := Authorize(member, OpResourceUpdate, &Target{})
	assert.True(t, utils.IsAuthorization(err))
	assert.NoError(t, Authorize(coManager, OpResourceUpdate, &Target{}))

	err = Authorize(member, OpResourceUpdate, nil)
	assert.True(t, utils.IsAuthorization(err))
}

func TestAuthorizeUnknownOperation(t *testing.T) {
	coManager := &Actor{ID: primitive.NewObjectID(), Role: models.RoleCoManager}
	err := Authorize(coManager, Operation("resource.transmogrify"), nil)
	assert.True(t, utils.IsAuthorization(err))
}

func TestActorFromUser(t *testing.T) {
	assert.Nil(t, ActorFromUser(nil))

	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleMember}
	actor := ActorFromUser(user)
	assert.Equal(t, user.ID, actor.ID)
	assert.Equal(t, models.RoleMember, actor.Role)
}
