package database

import (
	"fmt"
	"strings"
)

// Root collections.
const (
	CollectionUsers         = "users"
	CollectionCredentials   = "credentials"
	CollectionAnnouncements = "announcements"
	CollectionActivities    = "activities"
	CollectionProspects     = "prospects"
	CollectionMeetings      = "meetings"
	CollectionClosures      = "closures"

	// Flat collections of the previous schema, read only by the migration.
	CollectionLegacyCommitments = "commitments"
	CollectionLegacyReports     = "reports"
	CollectionLegacyUserStats   = "user_stats"
)

// Period segments under users/{uid}/commitments and users/{uid}/stats.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	StatsWeekly  = "weeklyAccomplishments"
	StatsMonthly = "monthlyAccomplishments"
)

func UserPath(uid string) string {
	return join(CollectionUsers, uid)
}

func CommitmentsCollection(uid, period string) string {
	return join(CollectionUsers, uid, "commitments", period, "entries")
}

func CommitmentPath(uid, period, key string) string {
	return join(CommitmentsCollection(uid, period), key)
}

func ReportsCollection(uid string) string {
	return join(CollectionUsers, uid, "reports", PeriodDaily, "entries")
}

func ReportPath(uid, dateKey string) string {
	return join(ReportsCollection(uid), dateKey)
}

func MeetingsCollection(uid, dateKey string) string {
	return join(ReportPath(uid, dateKey), "meetings")
}

func MeetingPath(uid, dateKey, id string) string {
	return join(MeetingsCollection(uid, dateKey), id)
}

func ProspectsCollection(uid string) string {
	return join(CollectionUsers, uid, "prospects")
}

func ProspectPath(uid, id string) string {
	return join(ProspectsCollection(uid), id)
}

func StatsCollection(uid, kind string) string {
	return join(CollectionUsers, uid, "stats", kind, "entries")
}

func StatsPath(uid, kind, key string) string {
	return join(StatsCollection(uid, kind), key)
}

// CredentialPath keys credentials by lowercased email so sign-in is a single read.
func CredentialPath(email string) string {
	return join(CollectionCredentials, strings.ToLower(strings.TrimSpace(email)))
}

func AnnouncementPath(id string) string {
	return join(CollectionAnnouncements, id)
}

func ActivityPath(id string) string {
	return join(CollectionActivities, id)
}

// ValidateID checks that id is usable as a single path segment.
func ValidateID(id string) error {
	if id == "" || id == "." || id == ".." || strings.Contains(id, "/") {
		return fmt.Errorf("invalid id %q", id)
	}
	return nil
}

// join does not clean its result: a "." or ".." segment must reach the
// path validation instead of being resolved away.
func join(parts ...string) string {
	return strings.Join(parts, "/")
}
