package models

import "time"

type Topic struct {
	ID          string `json:"id" gorm:"primaryKey;size:64" yaml:"id" validate:"required,max=64,topic_slug"`
	Name        string `json:"name" gorm:"not null;size:100" yaml:"name" validate:"required,max=100"`
	Icon        string `json:"icon" gorm:"size:16" yaml:"icon"`
	Description string `json:"description" gorm:"type:text" yaml:"description"`

	CreatedAt time.Time `json:"-" yaml:"-"`
	UpdatedAt time.Time `json:"-" yaml:"-"`
}

func (Topic) TableName() string {
	return "topics"
}
