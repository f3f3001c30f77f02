package senka

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gosimple/slug"
)

type Contest struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`

	// Slug is the external identifier used in URLs
	Slug string `json:"slug"`

	Description string `json:"description,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// OfficialMode grants writer/tester viewers elevated submission
	// visibility while the contest window is open
	OfficialMode bool `json:"official_mode"`
}

func (c *Contest) Started() bool {
	if c == nil {
		return false
	}
	return c.StartTime.Before(time.Now())
}

func (c *Contest) Running() bool {
	if c == nil {
		return false
	}
	now := time.Now()
	return c.StartTime.Before(now) && now.Before(c.EndTime)
}

func (c *Contest) Ended() bool {
	if c == nil {
		return false
	}
	return c.EndTime.Before(time.Now())
}

func (c *Contest) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Slug, validation.Required, validation.By(checkSlug)),
		validation.Field(&c.EndTime, validation.Required, validation.By(func(any) error {
			if !c.EndTime.After(c.StartTime) {
				return Statusf(422, "end time must be after start time")
			}
			return nil
		})),
	)
}

func checkSlug(value any) error {
	s, _ := value.(string)
	if !slug.IsSlug(s) {
		return Statusf(422, "invalid slug")
	}
	return nil
}

type ContestUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	OfficialMode *bool `json:"official_mode"`
}

type ContestFilter struct {
	ID   *int    `json:"id"`
	Slug *string `json:"slug"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
