package model

// Task is one scavenger-hunt objective on a team's checklist
type Task struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
	Image       *string `json:"image,omitempty"` // URL of the uploaded proof, nil when none
}

// HasImage returns true if the task has a media proof attached
func (t *Task) HasImage() bool {
	return t.Image != nil && *t.Image != ""
}
