package progress

import (
	"time"

	"github.com/edulane/tutoring-api/internal/models"
)

// FilterSessions returns the sessions whose start time falls within the
// inclusive [from, to] window, narrowed to subjectID when non-empty.
// Empty input yields empty output, never an error.
func FilterSessions(sessions []models.LearningSession, from, to time.Time, subjectID string) []models.LearningSession {
	filtered := make([]models.LearningSession, 0, len(sessions))
	for _, session := range sessions {
		if !within(session.StartTime, from, to) {
			continue
		}
		if subjectID != "" && session.SubjectID != subjectID {
			continue
		}
		filtered = append(filtered, session)
	}
	return filtered
}

// FilterSubmissions returns the submissions created within the inclusive
// [from, to] window, narrowed to the parent assessment's subject when
// subjectID is non-empty.
func FilterSubmissions(subs []models.AssessmentSubmission, from, to time.Time, subjectID string) []models.AssessmentSubmission {
	filtered := make([]models.AssessmentSubmission, 0, len(subs))
	for _, sub := range subs {
		if !within(sub.CreatedAt, from, to) {
			continue
		}
		if subjectID != "" && sub.SubjectID != subjectID {
			continue
		}
		filtered = append(filtered, sub)
	}
	return filtered
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
