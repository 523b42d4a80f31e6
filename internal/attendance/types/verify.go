package types

// Reason codes carried on VerifyResponse.  Every rejection the pipeline can
// produce has a stable machine-readable code; Message is the human-facing
// explanation.
const (
	ReasonPresent            = "present"
	ReasonSecurityAlert      = "security_alert"
	ReasonSessionNotActive   = "session_not_active"
	ReasonAlreadyMarked      = "already_marked"
	ReasonInvalidFingerprint = "invalid_fingerprint"
	ReasonDeviceMismatch     = "device_mismatch"
	ReasonLocationRequired   = "location_required"
	ReasonLocationTooFar     = "location_too_far"
	ReasonFaceDataRequired   = "face_data_required"
	ReasonFaceNotRegistered  = "face_not_registered"
	ReasonFaceMismatch       = "face_mismatch"
)

type VerifyRequest struct {
	SessionID         string    `json:"session_id"`
	Lat               *float64  `json:"lat,omitempty"`
	Lng               *float64  `json:"lng,omitempty"`
	FaceDescriptor    []float64 `json:"face_descriptor,omitempty"`
	DeviceFingerprint string    `json:"device_fingerprint"`
	VPNDetected       bool      `json:"is_vpn,omitempty"`
	DevModeDetected   bool      `json:"is_dev_mode,omitempty"`
}

// VerifyResponse reports the outcome of one submission.  A rejection is a
// normal response (OK=true, Marked=false, Reason set), not an HTTP error;
// only infrastructure faults surface as errors.
type VerifyResponse struct {
	OK         bool   `json:"ok"`
	Marked     bool   `json:"marked"`
	Reason     string `json:"reason"`
	Message    string `json:"message,omitempty"`
	SessionID  string `json:"session_id"`
	ServerTime string `json:"server_time"`
}

type RegisterFaceRequest struct {
	FaceDescriptor []float64 `json:"face_descriptor"`
}
