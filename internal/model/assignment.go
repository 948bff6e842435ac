package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment grants an actor review authority over a single request kind,
// e.g. "may decide ADVANCE_REQUEST" or "support agent". Narrower than a
// global role; an actor may hold zero or several assignments. Global
// management roles act as an implicit assignment to every kind.
type Assignment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;index:idx_assignments_actor_kind,unique" json:"actor_id"`
	Actor     *User     `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Kind      string    `gorm:"type:varchar(30);not null;index:idx_assignments_actor_kind,unique" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
