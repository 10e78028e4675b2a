package learningpaths

import "time"

// Module is one step of a learning path.
type Module struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Resources      []string `json:"resources,omitempty"`
	EstimatedHours int      `json:"estimatedHours,omitempty"`
	Completed      bool     `json:"completed"`
}

// Path is a generated learning path owned by one user. Module completion
// flags drive the progress tracker.
type Path struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Topic     string    `json:"topic"`
	Level     string    `json:"level,omitempty"`
	Modules   []Module  `json:"modules"`
	CreatedAt time.Time `json:"createdAt"`
}

// Progress summarizes completion for one path.
type Progress struct {
	PathID           string  `json:"pathId"`
	Topic            string  `json:"topic"`
	TotalModules     int     `json:"totalModules"`
	CompletedModules int     `json:"completedModules"`
	PercentComplete  float64 `json:"percentComplete"`
}

// ProgressOf computes the progress summary for a path.
func ProgressOf(p Path) Progress {
	completed := 0
	for _, m := range p.Modules {
		if m.Completed {
			completed++
		}
	}
	percent := 0.0
	if len(p.Modules) > 0 {
		percent = float64(completed) / float64(len(p.Modules)) * 100
	}
	return Progress{
		PathID:           p.ID,
		Topic:            p.Topic,
		TotalModules:     len(p.Modules),
		CompletedModules: completed,
		PercentComplete:  percent,
	}
}
