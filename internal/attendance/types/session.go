package types

type StartSessionRequest struct {
	CourseID string   `json:"course_id"`
	Mode     string   `json:"mode"` // "FACE" | "SIMPLE"
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
}

type StopSessionRequest struct {
	SessionID string `json:"session_id"`
}

type Session struct {
	ID        string   `json:"id"`
	CourseID  string   `json:"course_id"`
	Mode      string   `json:"mode"`
	StartedAt string   `json:"started_at"`
	EndedAt   string   `json:"ended_at,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Active    bool     `json:"active"`
}
