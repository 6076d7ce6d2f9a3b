package models

import "time"

type Announcement struct {
	ID        string    `json:"id" bson:"id" firestore:"id"`
	Title     string    `json:"title" bson:"title" firestore:"title"`
	Content   string    `json:"content" bson:"content" firestore:"content"`
	Priority  string    `json:"priority" bson:"priority" firestore:"priority"`
	CreatedBy string    `json:"createdBy" bson:"createdBy" firestore:"createdBy"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

type AnnouncementRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

const (
	ActivityCommitmentSubmitted = "commitment_submitted"
	ActivityReportSubmitted     = "report_submitted"
)

type Activity struct {
	ID          string    `json:"id" bson:"id" firestore:"id"`
	Type        string    `json:"type" bson:"type" firestore:"type"`
	Description string    `json:"description" bson:"description" firestore:"description"`
	UserID      string    `json:"userId" bson:"userId" firestore:"userId"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp" firestore:"timestamp"`
}

// ActivityView is an activity with its user's display name resolved.
type ActivityView struct {
	Activity
	UserName string `json:"userName"`
}

// ClosureRecord is a document of the root closures collection.
type ClosureRecord struct {
	Amount float64 `json:"amount" bson:"amount" firestore:"amount"`
}

type Overview struct {
	TotalEmployees   int            `json:"totalEmployees"`
	ActiveEmployees  int            `json:"activeEmployees"`
	TotalProspects   int            `json:"totalProspects"`
	TotalMeetings    int            `json:"totalMeetings"`
	TotalRevenue     float64        `json:"totalRevenue"`
	RecentActivities []ActivityView `json:"recentActivities"`
}
