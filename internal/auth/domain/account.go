package domain

import "time"

type Account struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Lawyer struct {
	ID             int64
	UserID         int64
	BarCode        string
	ChamberAddress string
	LawyerType     LawyerType
	// Owner fields, populated on listing.
	Name  string
	Email string
}

type Judge struct {
	ID           int64
	UserID       int64
	BarCode      string
	CourtAddress string
}

type PreTrial struct {
	ID             int64
	UserID         int64
	CaseAct        string
	Details        string
	DateRegistered time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LawyerFilter narrows a lawyer listing. Empty string fields are ignored.
type LawyerFilter struct {
	LawyerType LawyerType
	Name       string
	Email      string
}

// PreTrialFilter narrows a case listing. OwnerID is always applied.
type PreTrialFilter struct {
	OwnerID        int64
	CaseAct        string
	Details        string
	DateRegistered *time.Time
}
