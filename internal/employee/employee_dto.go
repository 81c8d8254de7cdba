package employee

type CreateEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Position     string `json:"position"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	HireDate     string `json:"hire_date"`
}

type UpdateEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Position     string `json:"position"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	HireDate     string `json:"hire_date"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	Nik            string `json:"nik"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Position       string `json:"position,omitempty"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
	HireDate       string `json:"hire_date,omitempty"`
	NikFallback    bool   `json:"nik_fallback,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// EmployeeOption adalah bentuk ringkas untuk dropdown di UI.
type EmployeeOption struct {
	ID   string `json:"id"`
	Nik  string `json:"nik"`
	Name string `json:"name"`
}

// ImportRowResult mencatat nasib satu baris file import. Satu baris gagal
// tidak membatalkan baris lain yang sudah berhasil.
type ImportRowResult struct {
	Row    int    `json:"row"`
	Status string `json:"status"`
	Nik    string `json:"nik,omitempty"`
	Error  string `json:"error,omitempty"`
}

type ImportSummary struct {
	Total    int               `json:"total"`
	Imported int               `json:"imported"`
	Failed   int               `json:"failed"`
	Results  []ImportRowResult `json:"results"`
}
