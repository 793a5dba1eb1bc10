package models

import "time"

const (
	MinGridSize = 1
	MaxGridSize = 20
)

type Container struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	ImagePath      string    `json:"image_path,omitempty" db:"image_path"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	SectionSeq     int       `json:"-" db:"section_seq"`
	ComponentCount int       `json:"component_count" db:"component_count"`
	Sections       []Section `json:"sections" db:"-"`
}

type Section struct {
	ID          int       `json:"id" db:"id"`
	ContainerID int       `json:"container_id" db:"container_id"`
	Name        string    `json:"name" db:"name"`
	Rows        int       `json:"rows" db:"rows"`
	Cols        int       `json:"cols" db:"cols"`
	Designation string    `json:"designation" db:"designation"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Contains reports whether a 1-based row and 0-based col fall inside the grid.
func (s Section) Contains(row, col int) bool {
	return row >= 1 && row <= s.Rows && col >= 0 && col < s.Cols
}

// Cell is one grid slot of a section. ComponentID is nil for an empty slot.
type Cell struct {
	Address     string `json:"address"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	ComponentID *int   `json:"component_id"`
}

type SectionGrid struct {
	Section
	ContainerName string      `json:"container_name"`
	Components    []Component `json:"components"`
	Cells         []Cell      `json:"cells"`
}

type SectionRequest struct {
	ID   *int   `json:"id,omitempty"`
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

type ContainerRequest struct {
	Name        string           `json:"name" form:"name"`
	Description string           `json:"description" form:"description"`
	Sections    []SectionRequest `json:"sections"`
	ImagePath   string           `json:"-"`
}

type ContainerChanges struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Sections    []SectionRequest `json:"sections"`
	ImagePath   *string          `json:"-"`
}

func (c *Container) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "container",
	}
}
