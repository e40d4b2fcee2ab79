package user

// Permission is the closed set of access levels. A user gets exactly one
// value at creation time and it never changes afterwards. The stored codes
// match the values persisted by earlier versions of the database.
type Permission string

const (
	PermissionRead      Permission = "r"
	PermissionWrite     Permission = "w"
	PermissionSuperuser Permission = "su"
)

func (p Permission) Valid() bool {
	switch p {
	case PermissionRead, PermissionWrite, PermissionSuperuser:
		return true
	}
	return false
}

// Satisfies reports whether a holder of p may perform an action requiring
// the given level: superuser satisfies everything, write also satisfies
// read, read satisfies only read. Any unknown value denies.
func (p Permission) Satisfies(required Permission) bool {
	if !required.Valid() {
		return false
	}
	switch p {
	case PermissionSuperuser:
		return true
	case PermissionWrite:
		return required == PermissionWrite || required == PermissionRead
	case PermissionRead:
		return required == PermissionRead
	}
	return false
}
