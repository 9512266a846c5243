package dto

type AskRequest struct {
	Question string `json:"question" validate:"required,max=500"`
}

type VaccineInfoResponse struct {
	Name                  string   `json:"name"`
	ScheduledAge          string   `json:"scheduled_age,omitempty"`
	ProtectsAgainst       []string `json:"protects_against"`
	Type                  string   `json:"type,omitempty"`
	Route                 string   `json:"route,omitempty"`
	SideEffects           []string `json:"side_effects"`
	SpecialConsiderations []string `json:"special_considerations"`
}

type VaccineListResponse struct {
	Vaccines []VaccineInfoResponse `json:"vaccines"`
	Total    int                   `json:"total"`
}

type AskResponse struct {
	Question string               `json:"question"`
	Found    bool                 `json:"found"`
	Vaccine  *VaccineInfoResponse `json:"vaccine,omitempty"`
	Message  string               `json:"message,omitempty"`
}
