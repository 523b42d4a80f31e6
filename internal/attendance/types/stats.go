package types

type StudentStats struct {
	StudentID    string  `json:"student_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	TotalPresent int     `json:"total_present"`
	Percentage   float64 `json:"percentage"`
}

type CourseStats struct {
	CourseID string         `json:"course_id"`
	Sessions []Session      `json:"sessions"`
	Students []StudentStats `json:"stats"`
}

type FacultyCourse struct {
	CourseID        string `json:"course_id"`
	Name            string `json:"name"`
	EnrolledCount   int    `json:"enrolled_count"`
	ActiveSessionID string `json:"active_session_id,omitempty"`
}

type ActiveSessionInfo struct {
	SessionID string   `json:"session_id"`
	Mode      string   `json:"mode"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	HasMarked bool     `json:"has_marked_attendance"`
}

type StudentCourse struct {
	CourseID        string             `json:"course_id"`
	CourseName      string             `json:"course_name"`
	TotalClasses    int                `json:"total_classes"`
	AttendedClasses int                `json:"attended_classes"`
	Percentage      float64            `json:"percentage"`
	ActiveSession   *ActiveSessionInfo `json:"active_session,omitempty"`
}

type StudentOverview struct {
	HasFaceData bool            `json:"has_face_data"`
	Courses     []StudentCourse `json:"courses"`
}
