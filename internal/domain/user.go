package domain

// Group names a coarse permission tier. Capability resolution lives in the
// auth package; the core only ever sees resolved capability strings.
type Group string

const (
	GroupUser    Group = "user"
	GroupManager Group = "manager"
	GroupAdmin   Group = "admin"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Group        Group
}
