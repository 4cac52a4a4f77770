package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/models"
)

const notificationBufferSize = 16

// Notification event kinds.
const (
	EventSubmissionReceived = "submission_received"
	EventSubmissionGraded   = "submission_graded"
)

// Notification is one realtime event streamed to connected dashboards.
type Notification struct {
	Type         string    `json:"type"`
	AssignmentID models.ID `json:"assignmentId"`
	CourseID     models.ID `json:"courseId"`
	StudentID    string    `json:"studentId"`
	RecipientID  string    `json:"recipientId"`
	Message      string    `json:"message"`
	SentAt       time.Time `json:"sentAt"`
}

// Notifier publishes submission lifecycle events.
type Notifier interface {
	SubmissionReceived(assignment models.Assignment, submission models.Submission)
	SubmissionGraded(assignment models.Assignment, submission models.Submission)
}

// NotificationService fans submission events out to in-process subscribers.
// Single-process only; there is no cross-instance broker.
type NotificationService interface {
	Notifier
	Subscribe(recipientID string) (<-chan Notification, func())
}

type notificationService struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Notification]struct{}
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewNotificationService constructs the in-process event hub.
func NewNotificationService(logger zerolog.Logger) NotificationService {
	return &notificationService{
		subscribers: make(map[string]map[chan Notification]struct{}),
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "notification_service").Logger(),
		now:         time.Now,
	}
}

// Subscribe registers a listener for events addressed to recipientID. The
// returned cancel func must be called when the listener goes away.
func (s *notificationService) Subscribe(recipientID string) (<-chan Notification, func()) {
	ch := make(chan Notification, notificationBufferSize)

	s.mu.Lock()
	if s.subscribers[recipientID] == nil {
		s.subscribers[recipientID] = make(map[chan Notification]struct{})
	}
	s.subscribers[recipientID][ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if set, ok := s.subscribers[recipientID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(s.subscribers, recipientID)
			}
		}
		s.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

func (s *notificationService) SubmissionReceived(assignment models.Assignment, submission models.Submission) {
	message := fmt.Sprintf("%s submitted %q", submission.StudentName, assignment.Title)
	s.publish(Notification{
		Type:         EventSubmissionReceived,
		AssignmentID: assignment.ID,
		CourseID:     assignment.CourseID,
		StudentID:    submission.StudentID,
		RecipientID:  assignment.InstructorID,
		Message:      message,
	})
}

func (s *notificationService) SubmissionGraded(assignment models.Assignment, submission models.Submission) {
	grade := 0
	if submission.Grade != nil {
		grade = *submission.Grade
	}
	message := fmt.Sprintf("%q was graded: %d/%d", assignment.Title, grade, assignment.Points)
	s.publish(Notification{
		Type:         EventSubmissionGraded,
		AssignmentID: assignment.ID,
		CourseID:     assignment.CourseID,
		StudentID:    submission.StudentID,
		RecipientID:  submission.StudentID,
		Message:      message,
	})
}

func (s *notificationService) publish(event Notification) {
	event.Message = strings.TrimSpace(s.sanitizer.Sanitize(event.Message))
	event.SentAt = s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers[event.RecipientID] {
		select {
		case ch <- event:
		default:
			// Slow consumer; drop rather than block the write path.
			s.logger.Warn().Str("recipient_id", event.RecipientID).Msg("notification dropped for slow subscriber")
		}
	}
}
