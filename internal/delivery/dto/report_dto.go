package dto

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type DashboardStatsResponse struct {
	TotalUsers     int64       `json:"total_users"`
	ClinicianCount int64       `json:"clinician_count"`
	PatientCount   int64       `json:"patient_count"`
	AdminCount     int64       `json:"admin_count"`
	Roles          []RoleCount `json:"roles"`
}

// KPIItem fields depend on the KPI type: PatientCount for clinicians,
// AssignedClinicianEmail for patients
type KPIItem struct {
	Email                  string  `json:"email"`
	UserName               string  `json:"user_name"`
	Role                   string  `json:"role"`
	PatientCount           *int64  `json:"patient_count,omitempty"`
	AssignedClinicianEmail *string `json:"assigned_clinician_email,omitempty"`
}

type KPIDetailsResponse struct {
	Type  string    `json:"type"`
	Count int       `json:"count"`
	Items []KPIItem `json:"items"`
}
