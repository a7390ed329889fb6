package database

// Collection names as constants to prevent typos
const (
	UsersCollection       = "users"
	DepartmentsCollection = "departments"
	FoldersCollection     = "folders"
	ResourcesCollection   = "resources"
	FilesCollection       = "files"
)
