package models

import "time"

// VoiceRequestStatus tracks asynchronous processing of a recorded request.
type VoiceRequestStatus string

const (
	VoicePending    VoiceRequestStatus = "pending"
	VoiceProcessing VoiceRequestStatus = "processing"
	VoiceCompleted  VoiceRequestStatus = "completed"
	VoiceFailed     VoiceRequestStatus = "failed"
)

// VoiceRequest is a recorded service request uploaded by a user.
type VoiceRequest struct {
	ID            string             `bson:"id" json:"id"`
	UserID        string             `bson:"userId" json:"userId"`
	AudioURL      string             `bson:"audioUrl" json:"audioUrl"`
	StoragePath   string             `bson:"storagePath" json:"-"`
	Status        VoiceRequestStatus `bson:"status" json:"status"`
	Transcription string             `bson:"transcription,omitempty" json:"transcription,omitempty"`
	Summary       string             `bson:"summary,omitempty" json:"summary,omitempty"`
	ServiceHint   string             `bson:"serviceHint,omitempty" json:"serviceHint,omitempty"`
	Error         string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VoiceTaskPayload is queued for the voice processor.
type VoiceTaskPayload struct {
	RequestID string `json:"requestId"`
	AudioURL  string `json:"audioUrl"`
}
