package dto

type RegisterClientInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Name      string `json:"name" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,maxbytes=72"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type RegisterLawyerInput struct {
	BarCode        string `json:"bar_code" validate:"required,max=255"`
	ChamberAddress string `json:"chamber_address"`
	LawyerType     string `json:"lawyer_type"`
}

type RegisterJudgeInput struct {
	BarCode      string `json:"bar_code" validate:"required,max=255"`
	CourtAddress string `json:"court_address"`
}

// CreateAccountInput is the operator-side account creation input.
type CreateAccountInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// CreatePreTrialInput is the operator-side case record input. DateRegistered uses DateLayout
// and defaults to today.
type CreatePreTrialInput struct {
	CaseAct        string `json:"case_act" validate:"required,max=255"`
	Details        string `json:"details"`
	DateRegistered string `json:"date_registered"`
}
