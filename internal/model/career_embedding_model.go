package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// CareerEmbedding backs semantic career search. It is only migrated on PostgreSQL
// with the pgvector extension.
type CareerEmbedding struct {
	CareerID  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"career_id"`
	Career    *Career         `gorm:"foreignKey:CareerID;constraint:OnDelete:CASCADE" json:"-"`
	Embedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (CareerEmbedding) TableName() string {
	return "career_embeddings"
}
