package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"  gorm:"column:created_at;not null"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at" gorm:"column:modified_at;not null"`
	CreatedBy  string    `db:"created_by"  json:"created_by"  gorm:"column:created_by"`
	ModifiedBy string    `db:"modified_by" json:"modified_by" gorm:"column:modified_by"`
}
