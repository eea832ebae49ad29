package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"attempt:create",
		"attempt:view-own",
		"comment:create",
		"training:run",
	},
	"admin": {
		"*", // everything
	},
}
