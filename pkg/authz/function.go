package authz

// Function identifies a permission-gated capability. Authorization decisions
// are keyed by the function's string value.
type Function string

const (
	FunctionAddUser            Function = "ADD_USER"
	FunctionUpdateUser         Function = "UPDATE_USER"
	FunctionAddGroup           Function = "ADD_GROUP"
	FunctionUpdateGroup        Function = "UPDATE_GROUP"
	FunctionAddPassword        Function = "ADD_PASSWORD"
	FunctionUpdatePassword     Function = "UPDATE_PASSWORD"
	FunctionBypassPermissions  Function = "BYPASS_PASSWORD_PERMISSIONS"
	FunctionUnlockUser         Function = "UNLOCK_USER"
	FunctionAddTemplate        Function = "ADD_TEMPLATE"
	FunctionUpdateTemplate     Function = "UPDATE_TEMPLATE"
	FunctionViewSystemSettings Function = "VIEW_SYSTEM_SETTINGS"
)

// allFunctions is the full enumeration, in declaration order.
var allFunctions = []Function{
	FunctionAddUser,
	FunctionUpdateUser,
	FunctionAddGroup,
	FunctionUpdateGroup,
	FunctionAddPassword,
	FunctionUpdatePassword,
	FunctionBypassPermissions,
	FunctionUnlockUser,
	FunctionAddTemplate,
	FunctionUpdateTemplate,
	FunctionViewSystemSettings,
}

// AllFunctions returns every defined function. Callers receive a fresh slice
// they may modify.
func AllFunctions() []Function {
	functions := make([]Function, len(allFunctions))
	copy(functions, allFunctions)
	return functions
}
