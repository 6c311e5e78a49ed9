package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/existflow/taskapi/internal/db"
	"github.com/labstack/echo/v4"
)

// pathID reads the :id path parameter. A non-integer id matches no record.
func pathID(c echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return 0, db.ErrNotFound
	}
	return id, nil
}

// pageParams reads page and pageSize; normalization happens in the store
func pageParams(b *echo.ValueBinder, page, pageSize *int) *echo.ValueBinder {
	*page = 1
	*pageSize = db.DefaultPageSize
	return b.Int("page", page).Int("pageSize", pageSize)
}

// dueDate accepts RFC 3339 as well as a bare local date-time or date, which
// are read as UTC
type dueDate struct {
	time.Time
}

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (d *dueDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("dueDate must be a string: %w", err)
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("dueDate %q is not a date", raw)
}

// ptr returns nil for an absent due date
func (d *dueDate) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
