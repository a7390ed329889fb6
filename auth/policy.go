package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resourcehub/models"
	"resourcehub/utils"
)

// Actor is the authenticated identity attached to a request. A nil *Actor
// means the request is anonymous.
type Actor struct {
	ID   primitive.ObjectID
	Role string
}

// Target identifies the entity an operation acts on. OwnerID is the nil
// ObjectID when the entity has no recorded owner.
type Target struct {
	OwnerID primitive.ObjectID
}

// Operation names an action gated by the policy.
type Operation string

const (
	OpResourceList     Operation = "resource.list"
	OpResourceGet      Operation = "resource.get"
	OpResourceCreate   Operation = "resource.create"
	OpResourceUpdate   Operation = "resource.update"
	OpResourceDelete   Operation = "resource.delete"
	OpResourceAttach   Operation = "resource.attach"
	OpResourceDetach   Operation = "resource.detach"
	OpResourceDownload Operation = "resource.download"
	OpResourceFavorite Operation = "resource.favorite"

	OpFolderList   Operation = "folder.list"
	OpFolderGet    Operation = "folder.get"
	OpFolderCreate Operation = "folder.create"
	OpFolderUpdate Operation = "folder.update"
	OpFolderDelete Operation = "folder.delete"

	OpDepartmentList   Operation = "department.list"
	OpDepartmentGet    Operation = "department.get"
	OpDepartmentCreate Operation = "department.create"
	OpDepartmentUpdate Operation = "department.update"
	OpDepartmentDelete Operation = "department.delete"

	OpUserList       Operation = "user.list"
	OpUserManage     Operation = "user.manage"
	OpFileRegister   Operation = "file.register"
	OpFileDelete     Operation = "file.delete"
	OpStatsView      Operation = "stats.view"
)

// rule declares the minimum role for an operation and whether ownership of
// the target is additionally required below co-manager.
type rule struct {
	minRole   int
	ownerOnly bool
	public    bool
}

var roleRank = map[string]int{
	models.RoleVisitor:   1,
	models.RoleMember:    2,
	models.RoleCoManager: 3,
}

var rules = map[Operation]rule{
	OpResourceList:     {public: true},
	OpResourceGet:      {public: true},
	OpResourceDownload: {public: true},
	OpFolderList:       {public: true},
	OpFolderGet:        {public: true},
	OpDepartmentList:   {public: true},
	OpDepartmentGet:    {public: true},
	OpStatsView:        {public: true},

	OpResourceFavorite: {minRole: roleRank[models.RoleVisitor]},

	OpResourceCreate: {minRole: roleRank[models.RoleMember]},
	OpResourceUpdate: {minRole: roleRank[models.RoleMember], ownerOnly: true},
	OpResourceDelete: {minRole: roleRank[models.RoleMember], ownerOnly: true},
	OpResourceAttach: {minRole: roleRank[models.RoleMember], ownerOnly: true},
	OpResourceDetach: {minRole: roleRank[models.RoleMember], ownerOnly: true},

	OpFolderCreate: {minRole: roleRank[models.RoleMember]},
	OpFolderUpdate: {minRole: roleRank[models.RoleMember], ownerOnly: true},
	OpFolderDelete: {minRole: roleRank[models.RoleMember], ownerOnly: true},

	OpDepartmentCreate: {minRole: roleRank[models.RoleCoManager]},
	OpDepartmentUpdate: {minRole: roleRank[models.RoleCoManager]},
	OpDepartmentDelete: {minRole: roleRank[models.RoleCoManager]},

	OpUserList:     {minRole: roleRank[models.RoleCoManager]},
	OpUserManage:   {minRole: roleRank[models.RoleCoManager]},
	OpFileRegister: {minRole: roleRank[models.RoleMember]},
	OpFileDelete:   {minRole: roleRank[models.RoleMember], ownerOnly: true},
}

// Authorize is the single decision point for every gated operation.
// It returns nil on allow, AuthenticationError when no actor is present
// for a non-public operation, and AuthorizationError when the actor's role
// or ownership is insufficient.
func Authorize(actor *Actor, op Operation, target *Target) error {
	r, ok := rules[op]
	if !ok {
		return utils.NewAuthorizationError("unknown operation")
	}

	if r.public {
		return nil
	}

	if actor == nil {
		return utils.NewAuthenticationError("authentication required")
	}

	rank, ok := roleRank[actor.Role]
	if !ok || rank < r.minRole {
		return utils.NewAuthorizationError("insufficient role")
	}

	if r.ownerOnly && actor.Role != models.RoleCoManager {
		if target == nil || target.OwnerID.IsZero() || target.OwnerID != actor.ID {
			return utils.NewAuthorizationError("only the owner or a co-manager may perform this action")
		}
	}

	return nil
}

// ActorFromUser builds a policy actor from a stored user record.
func ActorFromUser(user *models.User) *Actor {
	if user == nil {
		return nil
	}
	return &Actor{ID: user.ID, Role: user.Role}
}
