package personnel

type CreatePersonnelRequest struct {
	Firstname        string `json:"firstname" binding:"required,max=100"`
	Lastname         string `json:"lastname" binding:"required,max=100"`
	PhoneNumber      string `json:"phone_number" binding:"required,max=20"`
	BirthDate        string `json:"birth_date" binding:"required"`
	Degree           string `json:"degree" binding:"max=100"`
	FieldOfStudy     string `json:"field_of_study" binding:"max=100"`
	CareerRecords    string `json:"career_records"`
	Position         string `json:"position" binding:"required,max=100"`
	LevelForPosition string `json:"level_for_position" binding:"max=50"`
	DateOfEmployment string `json:"date_of_employment" binding:"required"`
	MaritalStatus    string `json:"marital_status" binding:"required,oneof=single married"`
	NumberOfChild    *int   `json:"number_of_child" binding:"omitempty,min=0"`
}

// UpdatePersonnelRequest replaces every writable field; number_of_personnel
// never changes after creation.
type UpdatePersonnelRequest CreatePersonnelRequest

type PersonnelResponse struct {
	ID                string `json:"id"`
	NumberOfPersonnel string `json:"number_of_personnel"`
	Firstname         string `json:"firstname"`
	Lastname          string `json:"lastname"`
	PhoneNumber       string `json:"phone_number"`
	BirthDate         string `json:"birth_date"`
	Degree            string `json:"degree"`
	FieldOfStudy      string `json:"field_of_study"`
	CareerRecords     string `json:"career_records"`
	Position          string `json:"position"`
	LevelForPosition  string `json:"level_for_position"`
	DateOfEmployment  string `json:"date_of_employment"`
	MaritalStatus     string `json:"marital_status"`
	NumberOfChild     *int   `json:"number_of_child"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

type PersonnelOptionResponse struct {
	ID                string `json:"id"`
	NumberOfPersonnel string `json:"number_of_personnel"`
	Firstname         string `json:"firstname"`
	Lastname          string `json:"lastname"`
}
