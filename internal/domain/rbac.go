package domain

// EnforceRequest is the authorization question the RBAC layer answers:
// may this employee perform action on resource?
type EnforceRequest struct {
	EmployeeID string
	Resource   string
	Action     string
}
