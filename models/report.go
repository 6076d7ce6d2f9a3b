package models

import "time"

const (
	OutcomeConverted   = "converted"
	OutcomeLost        = "lost"
	OutcomeFollowUp    = "follow_up"
	OutcomeRescheduled = "rescheduled"
)

type ReportedProspect struct {
	Name    string `json:"name" bson:"name" firestore:"name" validate:"required"`
	Contact string `json:"contact" bson:"contact" firestore:"contact"`
	Source  string `json:"source" bson:"source" firestore:"source"`
	Remarks string `json:"remarks" bson:"remarks" firestore:"remarks"`
}

type Closure struct {
	ProspectID   string  `json:"prospectId" bson:"prospectId" firestore:"prospectId"`
	ProspectName string  `json:"prospectName" bson:"prospectName" firestore:"prospectName"`
	Product      string  `json:"product" bson:"product" firestore:"product"`
	Amount       float64 `json:"amount" bson:"amount" firestore:"amount" validate:"gte=0"`
	ClosureDate  string  `json:"closureDate" bson:"closureDate" firestore:"closureDate"`
	Notes        string  `json:"notes" bson:"notes" firestore:"notes"`
}

type Report struct {
	CallsMade            int                `json:"callsMade" bson:"callsMade" firestore:"callsMade"`
	CallsTarget          int                `json:"callsTarget" bson:"callsTarget" firestore:"callsTarget"`
	Completion           float64            `json:"completion" bson:"completion" firestore:"completion"`
	ProspectsCount       int                `json:"prospectsCount" bson:"prospectsCount" firestore:"prospectsCount"`
	Prospects            []ReportedProspect `json:"prospects,omitempty" bson:"prospects,omitempty" firestore:"prospects,omitempty"`
	TotalProspects       int                `json:"totalProspects" bson:"totalProspects" firestore:"totalProspects"`
	ConvertedProspects   int                `json:"convertedProspects" bson:"convertedProspects" firestore:"convertedProspects"`
	MeetingsBooked       int                `json:"meetingsBooked" bson:"meetingsBooked" firestore:"meetingsBooked"`
	TotalExpectedRevenue float64            `json:"totalExpectedRevenue" bson:"totalExpectedRevenue" firestore:"totalExpectedRevenue"`
	Closures             []Closure          `json:"closures" bson:"closures" firestore:"closures"`
	RevenueGenerated     float64            `json:"revenueGenerated" bson:"revenueGenerated" firestore:"revenueGenerated"`
	Feedback             string             `json:"feedback" bson:"feedback" firestore:"feedback"`
	Date                 time.Time          `json:"date" bson:"date" firestore:"date"`
	DateStr              string             `json:"dateStr" bson:"dateStr" firestore:"dateStr"`
	WeekStr              string             `json:"weekStr" bson:"weekStr" firestore:"weekStr"`
	MonthStr             string             `json:"monthStr" bson:"monthStr" firestore:"monthStr"`
	Year                 int                `json:"year" bson:"year" firestore:"year"`
	Month                int                `json:"month" bson:"month" firestore:"month"`
	Day                  int                `json:"day" bson:"day" firestore:"day"`
	WeekNumber           int                `json:"weekNumber" bson:"weekNumber" firestore:"weekNumber"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type MeetingOutcome struct {
	MeetingID       string    `json:"meetingId" bson:"meetingId" firestore:"meetingId"`
	ProspectID      string    `json:"prospectId" bson:"prospectId" firestore:"prospectId"`
	ProspectName    string    `json:"prospectName" bson:"prospectName" firestore:"prospectName"`
	Outcome         string    `json:"outcome" bson:"outcome" firestore:"outcome"`
	ExpectedRevenue float64   `json:"expectedRevenue" bson:"expectedRevenue" firestore:"expectedRevenue"`
	RescheduledDate string    `json:"rescheduledDate,omitempty" bson:"rescheduledDate,omitempty" firestore:"rescheduledDate,omitempty"`
	Notes           string    `json:"notes,omitempty" bson:"notes,omitempty" firestore:"notes,omitempty"`
	UserID          string    `json:"userId" bson:"userId" firestore:"userId"`
	Date            time.Time `json:"date" bson:"date" firestore:"date"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type MeetingOutcomeInput struct {
	MeetingID       string  `json:"meetingId"`
	ProspectID      string  `json:"prospectId"`
	ProspectName    string  `json:"prospectName" validate:"required"`
	Outcome         string  `json:"outcome" validate:"required,oneof=converted lost follow_up rescheduled"`
	ExpectedRevenue float64 `json:"expectedRevenue" validate:"gte=0"`
	RescheduledDate string  `json:"rescheduledDate" validate:"omitempty,datetime=2006-01-02"`
	Notes           string  `json:"notes"`
}

type ReportRequest struct {
	CallsMade       int                   `json:"callsMade" validate:"gte=0"`
	Prospects       []ReportedProspect    `json:"prospects" validate:"dive"`
	MeetingOutcomes []MeetingOutcomeInput `json:"meetingOutcomes" validate:"dive"`
	Closures        []Closure             `json:"closures" validate:"dive"`
	Feedback        string                `json:"feedback"`
}

// ReportSubmission is everything report filing wrote.
type ReportSubmission struct {
	Report     Report      `json:"report"`
	Commitment *Commitment `json:"commitment"`
	Weekly     StatsRollup `json:"weekly"`
	Monthly    StatsRollup `json:"monthly"`
	Prospects  []Prospect  `json:"prospects"`
}

// ReportSummary is a row of the report history.
type ReportSummary struct {
	Report
	CommitmentTarget *int   `json:"commitmentTarget"`
	CommitmentStatus string `json:"commitmentStatus,omitempty"`
}
