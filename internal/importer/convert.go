package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

// Converted holds the domain objects produced from one seed file.
type Converted struct {
	Channels  []*domain.Channel
	Templates []*domain.TaskTemplate
}

// Convert transforms a validated ImportSchema into domain objects with fresh
// IDs. Call ValidateImportSchema first; Convert assumes the schema is valid.
// Channels without an explicit sort_order keep file order.
func Convert(schema *ImportSchema) *Converted {
	now := time.Now().UTC().Truncate(time.Second)
	out := &Converted{}

	for i, ch := range schema.Channels {
		channel := &domain.Channel{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(ch.Name),
			SortOrder: domain.IntFromPtrWithDefault(i, ch.SortOrder),
			CreatedAt: now,
			UpdatedAt: now,
		}
		out.Channels = append(out.Channels, channel)

		for _, t := range ch.Templates {
			out.Templates = append(out.Templates, convertTemplate(channel.ID, t, now))
		}
	}
	return out
}

func convertTemplate(channelID string, t TemplateImport, now time.Time) *domain.TaskTemplate {
	tmpl := &domain.TaskTemplate{
		ID:          uuid.New().String(),
		ChannelID:   channelID,
		Name:        strings.TrimSpace(t.Name),
		Description: t.Description,
		Priority:    domain.IntFromPtrWithDefault(0, t.Priority),
		Rule:        strings.TrimSpace(t.Rule),
		Important:   domain.BoolFromPtrWithDefault(false, t.Important),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for key, s := range t.Shifts {
		c := domain.ShiftCapacity{
			Enabled: true,
			Min:     domain.IntFromPtrWithDefault(0, s.Min),
			Max:     domain.IntFromPtrWithDefault(0, s.Max),
		}
		switch domain.Shift(key) {
		case domain.ShiftMorning:
			tmpl.Morning = c
		case domain.ShiftAfternoon:
			tmpl.Afternoon = c
		case domain.ShiftEvening:
			tmpl.Evening = c
		}
	}
	for i, name := range t.SubTasks {
		tmpl.SubTasks = append(tmpl.SubTasks, domain.SubTaskTemplate{
			ID:         uuid.New().String(),
			TemplateID: tmpl.ID,
			Name:       strings.TrimSpace(name),
			Position:   i,
		})
	}
	return tmpl
}
