package models

import "time"

const (
	StatusPending  = "pending"
	StatusAchieved = "achieved"
	StatusMissed   = "missed"

	// Older documents use these spellings.
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// NormalizeStatus maps legacy status spellings onto the current ones.
func NormalizeStatus(status string) string {
	switch status {
	case statusCompleted:
		return StatusAchieved
	case statusFailed:
		return StatusMissed
	case "":
		return StatusPending
	}
	return status
}

type ExpectedClosure struct {
	CustomerName    string  `json:"customerName" bson:"customerName" firestore:"customerName" validate:"required"`
	ContactDetails  string  `json:"contactDetails" bson:"contactDetails" firestore:"contactDetails"`
	Products        string  `json:"products" bson:"products" firestore:"products"`
	ExpectedRevenue float64 `json:"expectedRevenue" bson:"expectedRevenue" firestore:"expectedRevenue" validate:"gte=0"`
	Notes           string  `json:"notes" bson:"notes" firestore:"notes"`
}

type ExpectedMeeting struct {
	ProspectID   string `json:"prospectId" bson:"prospectId" firestore:"prospectId"`
	ProspectName string `json:"prospectName" bson:"prospectName" firestore:"prospectName" validate:"required"`
	Type         string `json:"type" bson:"type" firestore:"type" validate:"omitempty,oneof=online offline"`
	Product      string `json:"product" bson:"product" firestore:"product"`
}

type ExpectedProspects struct {
	Total int `json:"total" bson:"total" firestore:"total" validate:"gte=0"`
}

// Commitment is stored under daily, weekly and monthly paths. The weekly and
// monthly copies written by submission are snapshots of the day, while the
// migration accumulates totals into them.
type Commitment struct {
	UserID               string            `json:"userId" bson:"userId" firestore:"userId"`
	Date                 string            `json:"date" bson:"date" firestore:"date"`
	Target               int               `json:"target" bson:"target" firestore:"target"`
	Achieved             int               `json:"achieved" bson:"achieved" firestore:"achieved"`
	Status               string            `json:"status" bson:"status" firestore:"status"`
	WeekNumber           int               `json:"weekNumber" bson:"weekNumber" firestore:"weekNumber"`
	ExpectedClosures     []ExpectedClosure `json:"expectedClosures" bson:"expectedClosures" firestore:"expectedClosures"`
	ExpectedClosureCount int               `json:"expectedClosureCount" bson:"expectedClosureCount" firestore:"expectedClosureCount"`
	ExpectedMeetings     []ExpectedMeeting `json:"expectedMeetings" bson:"expectedMeetings" firestore:"expectedMeetings"`
	ExpectedProspects    ExpectedProspects `json:"expectedProspects" bson:"expectedProspects" firestore:"expectedProspects"`
	TotalExpectedRevenue float64           `json:"totalExpectedRevenue" bson:"totalExpectedRevenue" firestore:"totalExpectedRevenue"`
	StartDate            time.Time         `json:"startDate" bson:"startDate" firestore:"startDate"`
	EndDate              time.Time         `json:"endDate" bson:"endDate" firestore:"endDate"`
	DayOfWeek            int               `json:"dayOfWeek" bson:"dayOfWeek" firestore:"dayOfWeek"`
	DayOfMonth           int               `json:"dayOfMonth" bson:"dayOfMonth" firestore:"dayOfMonth"`
	MonthNumber          int               `json:"monthNumber" bson:"monthNumber" firestore:"monthNumber"`
	CreatedAt            time.Time         `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type CommitmentRequest struct {
	CallsToBeMade     int               `json:"callsToBeMade" validate:"gte=0"`
	ExpectedClosures  []ExpectedClosure `json:"expectedClosures" validate:"dive"`
	ExpectedMeetings  []ExpectedMeeting `json:"expectedMeetings" validate:"dive"`
	ExpectedProspects ExpectedProspects `json:"expectedProspects"`
}

// CommitmentSummary is a row of the commitment history.
type CommitmentSummary struct {
	Commitment
	ReportFiled bool `json:"reportFiled"`
}

// DayRecord pairs the commitment and report of one day; either may be nil.
type DayRecord struct {
	Date       string      `json:"date"`
	Commitment *Commitment `json:"commitment"`
	Report     *Report     `json:"report"`
}
