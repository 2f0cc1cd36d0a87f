package v1

import (
	"time"

	ez_uuid "github.com/expensetracker/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2024-03"` // Year and month in YYYY-MM format
}
