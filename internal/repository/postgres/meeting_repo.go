package postgres

import (
	"context"
	"time"

	"pathbridge-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type meetingRepo struct {
	db *pgxpool.Pool
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *pgxpool.Pool) domain.MeetingRepository {
	return &meetingRepo{db: db}
}

func (r *meetingRepo) Create(ctx context.Context, m *domain.Meeting) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now()
	if m.Status == "" {
		m.Status = domain.MeetingStatusRequested
	}

	query := `
		INSERT INTO meetings (id, title, date, time, student_id, mentor_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		m.ID, m.Title, m.Date, m.Time, m.StudentID, m.MentorID, m.Status, m.CreatedAt,
	)
	return err
}

func (r *meetingRepo) FetchByStudent(ctx context.Context, studentID string) ([]domain.MeetingWithMentor, error) {
	query := `
		SELECT
			m.id, m.title, m.date, m.time, m.student_id, m.mentor_id, m.status, m.created_at,
			u.id, u.name, u.username, u.image
		FROM meetings m
		JOIN users u ON m.mentor_id = u.id
		WHERE m.student_id = $1
		ORDER BY m.date ASC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []domain.MeetingWithMentor
	for rows.Next() {
		var m domain.MeetingWithMentor
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Date, &m.Time, &m.StudentID, &m.MentorID, &m.Status, &m.CreatedAt,
			&m.Mentor.ID, &m.Mentor.Name, &m.Mentor.Username, &m.Mentor.Image,
		); err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}
