package model

// Project represents a collection of tasks
type Project struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Timestamps
	Tasks []Task `json:"tasks"`
}

// DefaultSeedProject returns the demo project inserted into an empty store
func DefaultSeedProject() Project {
	desc := "Projeto exemplo seed"
	return Project{
		Name:        "Challenge XPTO",
		Description: &desc,
	}
}
