package ai

// ImportanceLevels defines the valid importance values a classifier may
// return, from most to least urgent.
var ImportanceLevels = []string{"high", "medium", "low"}

// MailCategories defines the valid category values a classifier may return.
var MailCategories = []string{
	"work",
	"education",
	"community",
	"advertisement",
	"notification",
	"personal",
	"other",
}

// MailSummary is the structured output of the summarization call.
// Any of the list fields may be empty.
type MailSummary struct {
	// Summary is a short prose summary of the mail content.
	Summary string `json:"summary"`

	// KeyPoints lists the main points made in the mail.
	KeyPoints []string `json:"key_points"`

	// ActionItems lists actions the recipient is expected to take.
	ActionItems []string `json:"action_items"`

	// ImportantDates lists dates and deadlines mentioned in the mail.
	ImportantDates []string `json:"important_dates"`

	// Contacts lists people or addresses relevant to the mail.
	Contacts []string `json:"contacts"`
}

// Classification is the structured output of the classification call.
// Values are raw model strings; callers map them onto domain types and
// apply defaults for unknown values.
type Classification struct {
	Importance string `json:"importance"`
	Category   string `json:"category"`
}
