package holiday

import (
	"context"
	"time"
)

type Repository interface {
	// ListByDate returns every holiday entry falling on date.
	ListByDate(ctx context.Context, date time.Time) ([]Holiday, error)
}
