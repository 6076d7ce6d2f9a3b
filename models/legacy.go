package models

import "time"

// Documents of the flat schema that predates per-user subcollections. They are
// only read by the migration.

type LegacyUser struct {
	Email       string     `json:"email" bson:"email" firestore:"email"`
	DisplayName string     `json:"displayName" bson:"displayName" firestore:"displayName"`
	Name        string     `json:"name" bson:"name" firestore:"name"`
	Role        string     `json:"role" bson:"role" firestore:"role"`
	CreatedAt   *time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	JoinedDate  *time.Time `json:"joinedDate" bson:"joinedDate" firestore:"joinedDate"`
	PhotoURL    string     `json:"photoURL" bson:"photoURL" firestore:"photoURL"`
	LastLogin   *time.Time `json:"lastLogin" bson:"lastLogin" firestore:"lastLogin"`
}

type LegacyCommitment struct {
	UserID               string            `json:"userId" bson:"userId" firestore:"userId"`
	Date                 *time.Time        `json:"date" bson:"date" firestore:"date"`
	CallsToBeMade        int               `json:"callsToBeMade" bson:"callsToBeMade" firestore:"callsToBeMade"`
	ActualCalls          int               `json:"actualCalls" bson:"actualCalls" firestore:"actualCalls"`
	Status               string            `json:"status" bson:"status" firestore:"status"`
	ExpectedClosures     []ExpectedClosure `json:"expectedClosures" bson:"expectedClosures" firestore:"expectedClosures"`
	TotalExpectedRevenue float64           `json:"totalExpectedRevenue" bson:"totalExpectedRevenue" firestore:"totalExpectedRevenue"`
}

type LegacyReport struct {
	UserID               string             `json:"userId" bson:"userId" firestore:"userId"`
	Date                 *time.Time         `json:"date" bson:"date" firestore:"date"`
	CallsMade            int                `json:"callsMade" bson:"callsMade" firestore:"callsMade"`
	CallsPlanned         int                `json:"callsPlanned" bson:"callsPlanned" firestore:"callsPlanned"`
	CallCompletion       float64            `json:"callCompletion" bson:"callCompletion" firestore:"callCompletion"`
	Prospects            []ReportedProspect `json:"prospects" bson:"prospects" firestore:"prospects"`
	ProspectsCount       int                `json:"prospectsCount" bson:"prospectsCount" firestore:"prospectsCount"`
	MeetingsBooked       int                `json:"meetingsBooked" bson:"meetingsBooked" firestore:"meetingsBooked"`
	TotalExpectedRevenue float64            `json:"totalExpectedRevenue" bson:"totalExpectedRevenue" firestore:"totalExpectedRevenue"`
	Feedback             string             `json:"feedback" bson:"feedback" firestore:"feedback"`
	CommitmentID         string             `json:"commitmentId" bson:"commitmentId" firestore:"commitmentId"`
}

type LegacyUserStats struct {
	CompletedCommitments int `json:"completedCommitments" bson:"completedCommitments" firestore:"completedCommitments"`
	LastWeekCalls        int `json:"lastWeekCalls" bson:"lastWeekCalls" firestore:"lastWeekCalls"`
}

type MigrationStageResult struct {
	Stage     string `json:"stage"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

type MigrationSummary struct {
	StartedAt  time.Time              `json:"startedAt"`
	FinishedAt time.Time              `json:"finishedAt"`
	Stages     []MigrationStageResult `json:"stages"`
}

// Failed reports whether any stage aborted.
func (s MigrationSummary) Failed() bool {
	for _, stage := range s.Stages {
		if stage.Error != "" {
			return true
		}
	}
	return false
}
