package model

// Team is a participating group with credentials and its assigned task list.
// Passwords are plain strings compared by equality; this is a game, not a
// security boundary, and the client needs the password echoed back so it can
// re-login after a refresh.
type Team struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Tasks    []Task `json:"tasks"`
	// CompletedAt is reserved for an "all tasks done" marker. No write path
	// sets it yet; pending product decision.
	CompletedAt *string `json:"completedAt,omitempty"`
}

// Task returns the task with the given id, or nil if the team has no such task
func (t *Team) Task(id string) *Task {
	for i := range t.Tasks {
		if t.Tasks[i].ID == id {
			return &t.Tasks[i]
		}
	}
	return nil
}

// Pending returns the number of tasks not yet completed
func (t *Team) Pending() int {
	n := 0
	for i := range t.Tasks {
		if !t.Tasks[i].Completed {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the team
func (t *Team) Clone() Team {
	c := *t
	c.Tasks = make([]Task, len(t.Tasks))
	copy(c.Tasks, t.Tasks)
	for i := range c.Tasks {
		if t.Tasks[i].Image != nil {
			img := *t.Tasks[i].Image
			c.Tasks[i].Image = &img
		}
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return c
}
