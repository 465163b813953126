package domain

// EnforceRequest asks whether a personnel may perform action on resource
// within a company.
type EnforceRequest struct {
	PersonnelID string `json:"personnel_id" binding:"required"`
	CompanyID   string `json:"company_id" binding:"required"`
	Resource    string `json:"resource" binding:"required"`
	Action      string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
