package rbac

// EnforceRequest asks for a decision within the caller's company. An empty
// personnel_id checks the caller itself.
type EnforceRequest struct {
	PersonnelID string `json:"personnel_id"`
	Resource    string `json:"resource" binding:"required"`
	Action      string `json:"action" binding:"required"`
}
