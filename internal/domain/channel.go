package domain

import (
	"fmt"
	"time"
)

type Channel struct {
	ID        string
	Name      string
	SortOrder int
	Removed   bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Templates is populated only by loaders that fetch the nested tree.
	Templates []*TaskTemplate
}

func (c *Channel) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("channel name is required")
	}
	return nil
}
