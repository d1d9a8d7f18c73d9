package model

import "time"

// Session is the state of one coaching cycle: created on first use, replaced on
// re-upload and cleared on reset. Sessions never share state.
type Session struct {
	ID          string          `json:"id"`
	Model       string          `json:"model"`
	Transcript  *Transcript     `json:"transcript,omitempty"`
	Metrics     *Metrics        `json:"metrics,omitempty"`
	Analysis    *AnalysisResult `json:"analysis,omitempty"`
	ChatHistory []ChatTurn      `json:"chatHistory"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ClearDerived drops everything produced from the current transcript
func (s *Session) ClearDerived() {
	s.Metrics = nil
	s.Analysis = nil
	s.ChatHistory = []ChatTurn{}
}

// SessionView is the dashboard projection of a session; raw transcript text is omitted
type SessionView struct {
	ID          string          `json:"id"`
	Model       string          `json:"model"`
	Filename    string          `json:"filename,omitempty"`
	Format      string          `json:"format,omitempty"`
	Metrics     *Metrics        `json:"metrics,omitempty"`
	Analysis    *AnalysisResult `json:"analysis,omitempty"`
	ChatHistory []ChatTurn      `json:"chatHistory"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// View projects the session for the dashboard
func (s *Session) View() SessionView {
	v := SessionView{
		ID:          s.ID,
		Model:       s.Model,
		Metrics:     s.Metrics,
		Analysis:    s.Analysis,
		ChatHistory: s.ChatHistory,
		UpdatedAt:   s.UpdatedAt,
	}
	if v.ChatHistory == nil {
		v.ChatHistory = []ChatTurn{}
	}
	if s.Transcript != nil {
		v.Filename = s.Transcript.Filename
		v.Format = string(s.Transcript.Format)
	}
	return v
}
