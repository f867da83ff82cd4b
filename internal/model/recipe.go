package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Ingredient is a single line of a recipe's ingredient list.
type Ingredient struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
	Unit   string `json:"unit,omitempty"`
}

// Ingredients is stored as a JSON array column.
type Ingredients []Ingredient

// Value implements the driver.Valuer interface
func (a Ingredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *Ingredients) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if bytes == nil {
		*a = Ingredients{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// StringArray is a custom type for handling string arrays in a JSON column
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if bytes == nil {
		*a = StringArray{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSON column type %T", value)
	}
}

// Recipe is the only persisted entity. Timestamps are unix milliseconds and
// are owned by the service clock, so gorm's automatic tracking is disabled.
type Recipe struct {
	ID           string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID      string      `gorm:"size:255;not null;index:idx_recipes_owner_created,priority:1" json:"ownerId"`
	Title        string      `gorm:"size:255;not null" json:"title"`
	Description  *string     `gorm:"type:text" json:"description,omitempty"`
	Ingredients  Ingredients `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions StringArray `gorm:"type:jsonb;not null" json:"instructions"`
	PrepTime     *int        `json:"prepTime,omitempty"`
	CookTime     *int        `json:"cookTime,omitempty"`
	Servings     *int        `json:"servings,omitempty"`
	Category     *string     `gorm:"size:100" json:"category,omitempty"`
	Tags         StringArray `gorm:"type:jsonb" json:"tags,omitempty"`
	Difficulty   *string     `gorm:"size:20" json:"difficulty,omitempty"`
	Rating       *int        `json:"rating,omitempty"`
	Notes        *string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    int64       `gorm:"not null;autoCreateTime:false;index:idx_recipes_owner_created,priority:2" json:"createdAt"`
	UpdatedAt    int64       `gorm:"not null;autoUpdateTime:false" json:"updatedAt"`
}

func (Recipe) TableName() string {
	return "recipes"
}
