package models

import "time"

// StatsRollup is a running weekly or monthly accomplishment total.
type StatsRollup struct {
	TasksCompleted int       `json:"tasksCompleted" bson:"tasksCompleted" firestore:"tasksCompleted"`
	ExtraTasks     int       `json:"extraTasks" bson:"extraTasks" firestore:"extraTasks"`
	StartDate      time.Time `json:"startDate" bson:"startDate" firestore:"startDate"`
	EndDate        time.Time `json:"endDate" bson:"endDate" firestore:"endDate"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type LeaderboardEntry struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	TasksCompleted int    `json:"tasksCompleted"`
	ExtraTasks     int    `json:"extraTasks"`
	IsCurrentUser  bool   `json:"isCurrentUser"`
}

type PeriodStats struct {
	Key                 string `json:"key"`
	TasksCompleted      int    `json:"tasksCompleted"`
	ExtraTasks          int    `json:"extraTasks"`
	TotalCompletedTasks int    `json:"totalCompletedTasks"`
}

type Dashboard struct {
	TodayCommitment *Commitment        `json:"todayCommitment"`
	Weekly          PeriodStats        `json:"weekly"`
	Monthly         PeriodStats        `json:"monthly"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
	Announcements   []Announcement     `json:"announcements"`
}
