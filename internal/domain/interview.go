package domain

import (
	"encoding/json"
	"time"
)

// Well-known pipeline stages. Stage is free text; these drive the KPIs.
const (
	StageApplied  = "Applied"
	StageOffer    = "Offer"
	StageRejected = "Rejected"
)

const (
	DefaultReferral          = "No"
	DefaultApplicationSource = "Company Website"
)

// JSONList is an ordered list of arbitrary JSON values, stored as one text
// column. A nil list marshals as [].
type JSONList []json.RawMessage

// MarshalJSON implements json.Marshaler.
func (l JSONList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]json.RawMessage(l))
}

// Application is one job application tracked through the interview pipeline.
type Application struct {
	ID                string     `json:"id"`
	UserID            string     `json:"-"`
	CompanyName       string     `json:"company_name"`
	Role              string     `json:"role"`
	CompanyPhone      string     `json:"company_phone"`
	CompanyEmail      string     `json:"company_email"`
	ExpectedCTC       string     `json:"expected_ctc"`
	CurrentCTC        string     `json:"current_ctc"`
	Stage             string     `json:"stage"`
	AppliedDate       *time.Time `json:"applied_date"`
	InterviewDate     *time.Time `json:"interview_date"`
	LocationType      string     `json:"location_type"`
	Referral          string     `json:"referral"`
	JobDescription    string     `json:"job_description"`
	JobPortalURL      string     `json:"job_portal_url"`
	JobPortalUsername string     `json:"job_portal_username"`
	JobPortalPassword string     `json:"job_portal_password"`
	ApplicationSource string     `json:"application_source"`
	ResumeVersion     string     `json:"resume_version"`
	Interviewers      JSONList   `json:"interviewers"`
	Notes             string     `json:"notes"`
	Questions         JSONList   `json:"questions"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IsScheduled reports whether an interview is booked and the application is
// still open.
func (a *Application) IsScheduled() bool {
	return a.InterviewDate != nil && a.Stage != StageRejected && a.Stage != StageOffer
}

// InterviewKPIs are the headline counters of the interview tracker.
type InterviewKPIs struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Offers    int `json:"offers"`
	Rejected  int `json:"rejected"`
}

// ComputeKPIs folds applications into the headline counters.
func ComputeKPIs(apps []*Application) InterviewKPIs {
	k := InterviewKPIs{Total: len(apps)}
	for _, a := range apps {
		if a.IsScheduled() {
			k.Scheduled++
		}
		switch a.Stage {
		case StageOffer:
			k.Offers++
		case StageRejected:
			k.Rejected++
		}
	}
	return k
}
