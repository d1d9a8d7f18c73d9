package service

// Session event types published to dashboard subscribers
const (
	EventAnalysisReady  = "analysis_ready"
	EventAnalysisFailed = "analysis_failed"
	EventChatAnswer     = "chat_answer"
	EventTranscript     = "transcript_loaded"
	EventSessionReset   = "session_reset"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
	DisconnectSession(sessionID string)
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToSession(string, string, interface{}) {}
func (nopBroadcaster) DisconnectSession(string)                       {}
