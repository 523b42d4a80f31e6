package service

import (
	"context"
	"math"

	"github.com/proximark/server/internal/attendance/store"
	"github.com/proximark/server/internal/attendance/types"
)

// StatsService derives attendance percentages from the ledger and session
// history.  Read-only: it never writes and holds no state of its own.
type StatsService struct {
	sessions store.SessionStore
	ledger   store.AttendanceStore
	courses  store.CourseStore
	students store.StudentStore
}

func NewStatsService(
	sessions store.SessionStore,
	ledger store.AttendanceStore,
	courses store.CourseStore,
	students store.StudentStore,
) *StatsService {
	return &StatsService{sessions: sessions, ledger: ledger, courses: courses, students: students}
}

// CourseStats returns the session history plus per-student present counts
// and percentages over all sessions of the course.
func (s *StatsService) CourseStats(ctx context.Context, courseID string) (types.CourseStats, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return types.CourseStats{}, err
	}

	sessions, err := s.sessions.ListByCourse(ctx, courseID)
	if err != nil {
		return types.CourseStats{}, err
	}

	sessionIDs := make([]string, len(sessions))
	wireSessions := make([]types.Session, len(sessions))
	for i, sess := range sessions {
		sessionIDs[i] = sess.ID
		wireSessions[i] = SessionToWire(sess)
	}

	records, err := s.ledger.ListBySessionIDs(ctx, sessionIDs)
	if err != nil {
		return types.CourseStats{}, err
	}

	presentByStudent := make(map[string]int)
	for _, rec := range records {
		if rec.Status == store.StatusPresent {
			presentByStudent[rec.StudentID]++
		}
	}

	enrolled, err := s.courses.ListEnrolledStudents(ctx, courseID)
	if err != nil {
		return types.CourseStats{}, err
	}

	stats := make([]types.StudentStats, len(enrolled))
	for i, st := range enrolled {
		present := presentByStudent[st.ID]
		stats[i] = types.StudentStats{
			StudentID:    st.ID,
			Name:         st.Name,
			Email:        st.Email,
			TotalPresent: present,
			Percentage:   percentage(present, len(sessions)),
		}
	}

	return types.CourseStats{
		CourseID: courseID,
		Sessions: wireSessions,
		Students: stats,
	}, nil
}

// FacultyCourses lists a faculty member's courses with enrolled counts and
// the active session id, if any.
func (s *StatsService) FacultyCourses(ctx context.Context, facultyID string) ([]types.FacultyCourse, error) {
	courses, err := s.courses.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	out := make([]types.FacultyCourse, 0, len(courses))
	for _, c := range courses {
		n, err := s.courses.CountEnrolled(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		fc := types.FacultyCourse{CourseID: c.ID, Name: c.Name, EnrolledCount: n}

		active, err := s.sessions.ActiveByCourse(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if active != nil {
			fc.ActiveSessionID = active.ID
		}
		out = append(out, fc)
	}
	return out, nil
}

// StudentOverview returns the student's enrolled courses with attendance
// percentages, the active session of each (including whether this student
// already marked it), and whether face registration is complete.
func (s *StatsService) StudentOverview(ctx context.Context, studentID string) (types.StudentOverview, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return types.StudentOverview{}, err
	}

	courses, err := s.courses.ListForStudent(ctx, studentID)
	if err != nil {
		return types.StudentOverview{}, err
	}

	overview := types.StudentOverview{
		HasFaceData: student.HasFaceDescriptor(),
		Courses:     make([]types.StudentCourse, 0, len(courses)),
	}

	for _, c := range courses {
		sessions, err := s.sessions.ListByCourse(ctx, c.ID)
		if err != nil {
			return types.StudentOverview{}, err
		}

		sessionIDs := make([]string, len(sessions))
		for i, sess := range sessions {
			sessionIDs[i] = sess.ID
		}

		records, err := s.ledger.ListBySessionIDs(ctx, sessionIDs)
		if err != nil {
			return types.StudentOverview{}, err
		}

		attended := 0
		for _, rec := range records {
			if rec.StudentID == studentID && rec.Status == store.StatusPresent {
				attended++
			}
		}

		sc := types.StudentCourse{
			CourseID:        c.ID,
			CourseName:      c.Name,
			TotalClasses:    len(sessions),
			AttendedClasses: attended,
			Percentage:      percentage(attended, len(sessions)),
		}

		active, err := s.sessions.ActiveByCourse(ctx, c.ID)
		if err != nil {
			return types.StudentOverview{}, err
		}
		if active != nil {
			marked, err := s.ledger.Exists(ctx, active.ID, studentID)
			if err != nil {
				return types.StudentOverview{}, err
			}
			sc.ActiveSession = &types.ActiveSessionInfo{
				SessionID: active.ID,
				Mode:      active.Mode,
				Lat:       active.FacultyLat,
				Lng:       active.FacultyLng,
				HasMarked: marked,
			}
		}

		overview.Courses = append(overview.Courses, sc)
	}

	return overview, nil
}

// percentage rounds to one decimal place, 0 when there are no sessions.
func percentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*1000) / 10
}
