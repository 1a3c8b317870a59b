package dto

import (
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
)

type LawyerOutput struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user"`
	Name           string            `json:"name,omitempty"`
	Email          string            `json:"email,omitempty"`
	BarCode        string            `json:"bar_code"`
	ChamberAddress string            `json:"chamber_address"`
	LawyerType     domain.LawyerType `json:"lawyer_type"`
}

type JudgeOutput struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user"`
	BarCode      string `json:"bar_code"`
	CourtAddress string `json:"court_address"`
}

type PreTrialOutput struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user"`
	CaseAct        string    `json:"case_act"`
	Details        string    `json:"details"`
	DateRegistered string    `json:"date_registered"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type LawyerRegisteredResponse struct {
	Message string       `json:"message"`
	Lawyer  LawyerOutput `json:"lawyer"`
}

type JudgeRegisteredResponse struct {
	Message string      `json:"message"`
	Judge   JudgeOutput `json:"judge"`
}

type LawyerListOutput struct {
	FilteredLawyers []LawyerOutput `json:"filtered_lawyers"`
	PageObj         []LawyerOutput `json:"page_obj"`
	Page            int            `json:"page"`
	NumPages        int            `json:"num_pages"`
	Count           int            `json:"count"`
}

type PreTrialListOutput struct {
	FilteredPreTrials []PreTrialOutput `json:"filtered_pretrials"`
	PageObj           []PreTrialOutput `json:"page_obj"`
	Page              int              `json:"page"`
	NumPages          int              `json:"num_pages"`
	Count             int              `json:"count"`
}

// LawyerQuery holds the raw /list/lawyer query string.
type LawyerQuery struct {
	LawyerType string `query:"lawyer_type"`
	Name       string `query:"name"`
	Email      string `query:"email"`
	Page       string `query:"page"`
}

// PreTrialQuery holds the raw /list/pretrial query string.
type PreTrialQuery struct {
	CaseAct        string `query:"case_act"`
	Details        string `query:"details"`
	DateRegistered string `query:"date_registered"`
	Page           string `query:"page"`
}

func NewLawyerOutput(l domain.Lawyer) LawyerOutput {
	return LawyerOutput{
		ID:             l.ID,
		UserID:         l.UserID,
		Name:           l.Name,
		Email:          l.Email,
		BarCode:        l.BarCode,
		ChamberAddress: l.ChamberAddress,
		LawyerType:     l.LawyerType,
	}
}

func NewJudgeOutput(j domain.Judge) JudgeOutput {
	return JudgeOutput{ID: j.ID, UserID: j.UserID, BarCode: j.BarCode, CourtAddress: j.CourtAddress}
}

func NewPreTrialOutput(p domain.PreTrial) PreTrialOutput {
	return PreTrialOutput{
		ID:             p.ID,
		UserID:         p.UserID,
		CaseAct:        p.CaseAct,
		Details:        p.Details,
		DateRegistered: p.DateRegistered.Format(DateLayout),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

func NewLawyerOutputs(ls []domain.Lawyer) []LawyerOutput {
	out := make([]LawyerOutput, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewLawyerOutput(l))
	}
	return out
}

func NewPreTrialOutputs(ps []domain.PreTrial) []PreTrialOutput {
	out := make([]PreTrialOutput, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPreTrialOutput(p))
	}
	return out
}
