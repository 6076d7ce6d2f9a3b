package models

import "time"

const (
	ProspectPending   = "pending"
	ProspectConverted = "converted"
	ProspectLost      = "lost"
)

type Prospect struct {
	ID         string    `json:"id" bson:"id" firestore:"id"`
	Name       string    `json:"name" bson:"name" firestore:"name"`
	Contact    string    `json:"contact" bson:"contact" firestore:"contact"`
	Source     string    `json:"source" bson:"source" firestore:"source"`
	Remarks    string    `json:"remarks" bson:"remarks" firestore:"remarks"`
	Status     string    `json:"status" bson:"status" firestore:"status"`
	UserID     string    `json:"userId" bson:"userId" firestore:"userId"`
	DateAdded  time.Time `json:"dateAdded" bson:"dateAdded" firestore:"dateAdded"`
	ReportDate string    `json:"reportDate,omitempty" bson:"reportDate,omitempty" firestore:"reportDate,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type CreateProspectRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
	Source  string `json:"source"`
	Remarks string `json:"remarks"`
}

type UpdateProspectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=converted lost"`
}
