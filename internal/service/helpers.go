package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

const dateLayout = "2006-01-02"

// sortForPlanning orders templates the way their items appear in a
// planning: priority ascending, then name, then id.
func sortForPlanning(templates []*domain.TaskTemplate) {
	sort.SliceStable(templates, func(i, j int) bool {
		a, b := templates[i], templates[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

func collectRules(channels []*domain.Channel) map[string]string {
	rules := make(map[string]string)
	for _, ch := range channels {
		for _, t := range ch.Templates {
			rules[t.ID] = t.Rule
		}
	}
	return rules
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
