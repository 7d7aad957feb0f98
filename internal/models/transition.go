package models

import (
	"time"

	"gorm.io/gorm"
)

type Transition struct {
	ID        uint           `gorm:"primaryKey" json:"id" yaml:"id"`
	RunID     string         `gorm:"size:26;not null;index" json:"run_id" yaml:"run_id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp" yaml:"timestamp"`
	Kind      string         `gorm:"not null;index" json:"kind" yaml:"kind"` // "shown", "hidden" or "hide_aborted"
	PointerY  int            `gorm:"not null" json:"pointer_y" yaml:"pointer_y"`
	DwellMs   int64          `gorm:"not null;default:0" json:"dwell_ms" yaml:"dwell_ms"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at" yaml:"-"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at" yaml:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" yaml:"-"`
}

type KindCount struct {
	Kind  string `json:"kind" yaml:"kind"`
	Count int64  `json:"count" yaml:"count"`
}

type History struct {
	Transitions []Transition `json:"transitions" yaml:"transitions"`
	Counts      []KindCount  `json:"counts" yaml:"counts"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
}
