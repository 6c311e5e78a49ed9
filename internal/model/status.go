package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status is the workflow state of a task. Stored as its number, sent on the
// wire as its name.
type Status int

const (
	StatusTodo Status = iota
	StatusInProgress
	StatusDone
)

var statusNames = [...]string{"Todo", "InProgress", "Done"}

// String returns the wire name of the status
func (s Status) String() string {
	if !s.Valid() {
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s >= StatusTodo && s <= StatusDone
}

// ParseStatus accepts a status name (any case) or its number
func ParseStatus(v string) (Status, error) {
	v = strings.TrimSpace(v)
	for i, name := range statusNames {
		if strings.EqualFold(v, name) {
			return Status(i), nil
		}
	}
	if n, err := strconv.Atoi(v); err == nil && Status(n).Valid() {
		return Status(n), nil
	}
	return 0, fmt.Errorf("invalid status %q", v)
}

// MarshalJSON encodes the status as its name
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the name or the number
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseStatus(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("status must be a string or number: %w", err)
	}
	if !Status(n).Valid() {
		return fmt.Errorf("invalid status %d", n)
	}
	*s = Status(n)
	return nil
}

// UnmarshalParam lets echo bind a status from a query parameter
func (s *Status) UnmarshalParam(param string) error {
	parsed, err := ParseStatus(param)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
