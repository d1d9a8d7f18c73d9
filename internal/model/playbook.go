package model

// Playbook is the static consultation reference shown next to the dashboard
type Playbook struct {
	Questions  []string          `json:"questions"`
	Hesitation []HesitationReply `json:"hesitation"`
}

type HesitationReply struct {
	Topic string `json:"topic"`
	Reply string `json:"reply"`
}

// DefaultPlaybook returns the consultation questions and hesitation handling lines
func DefaultPlaybook() Playbook {
	return Playbook{
		Questions: []string{
			"What is your wedding date, location, and ceremony timeline?",
			"What is your skin type and coverage preference?",
			"Do you have inspiration photos or a mood board?",
			"How many people need services and what time is the ceremony?",
			"What is your budget range for beauty services?",
			"How do you plan to make the decision and by when?",
			"What are your expectations for a trial?",
		},
		Hesitation: []HesitationReply{
			{Topic: "Pricing", Reply: "Name the package, anchor the value, and confirm fit."},
			{Topic: "Timing", Reply: "Clarify decision timing and explain how the date is held with a deposit."},
			{Topic: "Aesthetic fit", Reply: "Mirror their vision, then state your signature clearly."},
		},
	}
}
