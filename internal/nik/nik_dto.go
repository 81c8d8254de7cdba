package nik

type CreateConfigRequest struct {
	DepartmentID   string `json:"department_id" binding:"required,uuid"`
	Prefix         string `json:"prefix" binding:"required,max=20"`
	StartSequence  int64  `json:"start_sequence"`
	SequenceLength int    `json:"sequence_length" binding:"required,min=1,max=12"`
	FormatPattern  string `json:"format_pattern"`
}

type UpdateConfigRequest struct {
	Prefix         string `json:"prefix" binding:"required,max=20"`
	SequenceLength int    `json:"sequence_length" binding:"required,min=1,max=12"`
	FormatPattern  string `json:"format_pattern"`
	IsActive       *bool  `json:"is_active" binding:"required"`
}

type ValidateFormatRequest struct {
	Nik            string `json:"nik" binding:"required"`
	DepartmentName string `json:"department_name" binding:"required"`
}

type ValidateFormatResponse struct {
	Nik            string   `json:"nik"`
	DepartmentName string   `json:"department_name"`
	Valid          bool     `json:"valid"`
	AcceptedForms  []string `json:"accepted_forms"`
}

type ConfigResponse struct {
	ID              string `json:"id"`
	DepartmentID    string `json:"department_id"`
	DepartmentName  string `json:"department_name,omitempty"`
	Prefix          string `json:"prefix"`
	CurrentSequence int64  `json:"current_sequence"`
	SequenceLength  int    `json:"sequence_length"`
	FormatPattern   string `json:"format_pattern,omitempty"`
	IsActive        bool   `json:"is_active"`
}

type GeneratedNik struct {
	Nik          string `json:"nik"`
	DepartmentID string `json:"department_id"`
	Sequence     int64  `json:"sequence"`
	NextSequence int64  `json:"next_sequence"`
	UsedFallback bool   `json:"used_fallback_department"`
}
