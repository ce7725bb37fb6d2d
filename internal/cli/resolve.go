package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

const dateLayout = "2006-01-02"

// resolveDate accepts YYYY-MM-DD, "today", "tomorrow" or "yesterday".
// An empty value means today.
func resolveDate(app *App, input string) (time.Time, error) {
	today := domain.NormalizeDate(app.now())
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	d, err := time.Parse(dateLayout, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", input, err)
	}
	return d, nil
}

// matchID picks the one candidate equal to input or, failing that, the one
// it prefixes.
func matchID(kind, input string, ids []string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", kind, input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveChannel finds a channel by case-insensitive name, ID or ID prefix.
// Removed channels are included so they can be restored.
func resolveChannel(ctx context.Context, app *App, input string) (*domain.Channel, error) {
	if input == "" {
		return nil, fmt.Errorf("channel is required")
	}
	channels, err := app.Channels.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, c := range channels {
		if strings.EqualFold(c.Name, input) {
			return c, nil
		}
	}
	ids := make([]string, 0, len(channels))
	byID := make(map[string]*domain.Channel, len(channels))
	for _, c := range channels {
		ids = append(ids, c.ID)
		byID[c.ID] = c
	}
	id, err := matchID("channel", input, ids)
	if err != nil {
		return nil, err
	}
	return byID[id], nil
}

func resolveTemplateID(ctx context.Context, app *App, input string) (string, error) {
	channels, err := app.Channels.List(ctx, true)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, c := range channels {
		templates, err := app.Templates.ListByChannel(ctx, c.ID)
		if err != nil {
			return "", err
		}
		for _, t := range templates {
			ids = append(ids, t.ID)
		}
	}
	return matchID("template", input, ids)
}

// loadDay returns the full plannings of date and channel names by ID.
func loadDay(ctx context.Context, app *App, date time.Time) ([]*domain.Planning, map[string]string, error) {
	channels, err := app.Channels.List(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[string]string, len(channels))
	for _, c := range channels {
		names[c.ID] = c.Name
	}
	summaries, err := app.Plannings.ListPlannings(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	plannings := make([]*domain.Planning, 0, len(summaries))
	for _, s := range summaries {
		p, err := app.Plannings.GetPlanning(ctx, s.ChannelID, date)
		if err != nil {
			return nil, nil, err
		}
		plannings = append(plannings, p)
	}
	return plannings, names, nil
}

// resolveItemID finds a planning item of date by ID or ID prefix.
func resolveItemID(ctx context.Context, app *App, date time.Time, input string) (string, error) {
	plannings, _, err := loadDay(ctx, app, date)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, p := range plannings {
		for _, item := range p.Items {
			ids = append(ids, item.ID)
		}
	}
	return matchID("item", input, ids)
}

// resolveSubTaskID finds a sub-task item of date by ID or ID prefix.
func resolveSubTaskID(ctx context.Context, app *App, date time.Time, input string) (string, error) {
	plannings, _, err := loadDay(ctx, app, date)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, p := range plannings {
		for _, item := range p.Items {
			for _, st := range item.SubTasks {
				ids = append(ids, st.ID)
			}
		}
	}
	return matchID("sub-task", input, ids)
}
