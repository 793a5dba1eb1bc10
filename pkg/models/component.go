package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JungleeAadmi/component-storage/pkg/metadata"
)

// ComponentFields are the persisted component columns.
var ComponentFields = []string{
	"id", "section_id", "grid_position", "name", "quantity", "min_quantity", "specification",
	"category", "custom_category", "value", "package_type", "manufacturer", "part_number",
	"purchase_link", "datasheet_url", "custom_data", "image_path", "created_at", "updated_at",
}

type Component struct {
	ID             int                  `json:"id" db:"id"`
	SectionID      int                  `json:"section_id" db:"section_id"`
	GridPosition   string               `json:"grid_position" db:"grid_position"`
	Name           string               `json:"name" db:"name"`
	Quantity       int                  `json:"quantity" db:"quantity"`
	MinQuantity    int                  `json:"min_quantity" db:"min_quantity"`
	Specification  string               `json:"specification" db:"specification"`
	Category       string               `json:"category" db:"category"`
	CustomCategory string               `json:"custom_category" db:"custom_category"`
	Value          string               `json:"value" db:"value"`
	PackageType    string               `json:"package_type" db:"package_type"`
	Manufacturer   string               `json:"manufacturer" db:"manufacturer"`
	PartNumber     string               `json:"part_number" db:"part_number"`
	PurchaseLink   string               `json:"purchase_link" db:"purchase_link"`
	DatasheetURL   string               `json:"datasheet_url" db:"datasheet_url"`
	CustomData     CustomData           `json:"custom_data" db:"custom_data"`
	ImagePath      string               `json:"image_path,omitempty" db:"image_path"`
	CreatedAt      time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" db:"updated_at"`
	Status         metadata.StockStatus `json:"status" db:"-"`
	Attachments    []Attachment         `json:"attachments" db:"-"`
}

// EffectiveCategory is the custom category when one is set, the category otherwise.
func (c Component) EffectiveCategory() string {
	if c.CustomCategory != "" {
		return c.CustomCategory
	}
	return c.Category
}

func (c *Component) LoadStatus() {
	c.Status = metadata.StockStatusFor(c.Quantity, c.MinQuantity)
}

func (c *Component) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "component",
	}
}

type CustomItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CustomData is stored as a JSONB document next to the component row.
type CustomData struct {
	Notes string       `json:"notes"`
	Items []CustomItem `json:"items"`
}

func (d CustomData) Value() (driver.Value, error) {
	if d.Items == nil {
		d.Items = []CustomItem{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *CustomData) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = CustomData{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported custom_data type %T", src)
	}
	return json.Unmarshal(raw, d)
}

type Attachment struct {
	ID          int       `json:"id" db:"id"`
	ComponentID int       `json:"component_id" db:"component_id"`
	FilePath    string    `json:"file_path" db:"file_path"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileType    string    `json:"file_type" db:"file_type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ComponentWithLocation is a component enriched with where it lives.
type ComponentWithLocation struct {
	Component
	ContainerID        int    `json:"container_id" db:"container_id"`
	ContainerName      string `json:"container_name" db:"container_name"`
	SectionName        string `json:"section_name" db:"section_name"`
	SectionDesignation string `json:"section_designation" db:"section_designation"`
}

// ComponentRequest carries the writable component fields. Nil pointers are left unchanged
// on update.
type ComponentRequest struct {
	SectionID      *int        `json:"section_id"`
	GridPosition   *string     `json:"grid_position"`
	Name           *string     `json:"name"`
	Quantity       *int        `json:"quantity"`
	MinQuantity    *int        `json:"min_quantity"`
	Specification  *string     `json:"specification"`
	Category       *string     `json:"category"`
	CustomCategory *string     `json:"custom_category"`
	Value          *string     `json:"value"`
	PackageType    *string     `json:"package_type"`
	Manufacturer   *string     `json:"manufacturer"`
	PartNumber     *string     `json:"part_number"`
	PurchaseLink   *string     `json:"purchase_link"`
	DatasheetURL   *string     `json:"datasheet_url"`
	CustomData     *CustomData `json:"custom_data"`
}

// Apply copies every supplied field onto c.
func (r ComponentRequest) Apply(c *Component) {
	if r.SectionID != nil {
		c.SectionID = *r.SectionID
	}
	if r.GridPosition != nil {
		c.GridPosition = *r.GridPosition
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Quantity != nil {
		c.Quantity = *r.Quantity
	}
	if r.MinQuantity != nil {
		c.MinQuantity = *r.MinQuantity
	}
	if r.Specification != nil {
		c.Specification = *r.Specification
	}
	if r.Category != nil {
		c.Category = *r.Category
	}
	if r.CustomCategory != nil {
		c.CustomCategory = *r.CustomCategory
	}
	if r.Value != nil {
		c.Value = *r.Value
	}
	if r.PackageType != nil {
		c.PackageType = *r.PackageType
	}
	if r.Manufacturer != nil {
		c.Manufacturer = *r.Manufacturer
	}
	if r.PartNumber != nil {
		c.PartNumber = *r.PartNumber
	}
	if r.PurchaseLink != nil {
		c.PurchaseLink = *r.PurchaseLink
	}
	if r.DatasheetURL != nil {
		c.DatasheetURL = *r.DatasheetURL
	}
	if r.CustomData != nil {
		c.CustomData = *r.CustomData
	}
}

type MoveRequest struct {
	SectionID    int    `json:"section_id" binding:"required"`
	GridPosition string `json:"grid_position" binding:"required"`
}

type QuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}
