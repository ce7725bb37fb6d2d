package importer

import (
	"fmt"
	"strings"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

// ValidateImportSchema checks the seed file for structural errors before
// conversion and returns all of them. Rule syntax is checked by the caller.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Channels) == 0 {
		errs = append(errs, fmt.Errorf("channels: at least one channel is required"))
	}

	seen := make(map[string]bool)
	for i, ch := range schema.Channels {
		path := fmt.Sprintf("channels[%d]", i)
		name := strings.TrimSpace(ch.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", path))
		} else if seen[strings.ToLower(name)] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate channel %q", path, ch.Name))
		}
		seen[strings.ToLower(name)] = true

		for j := range ch.Templates {
			errs = append(errs, validateTemplate(fmt.Sprintf("%s.templates[%d]", path, j), &ch.Templates[j])...)
		}
	}
	return errs
}

func validateTemplate(path string, t *TemplateImport) []error {
	var errs []error

	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", path))
	}
	if strings.TrimSpace(t.Rule) == "" {
		errs = append(errs, fmt.Errorf("%s.rule is required", path))
	}
	for key, s := range t.Shifts {
		if _, err := domain.ParseShift(key); err != nil {
			errs = append(errs, fmt.Errorf("%s.shifts: %w", path, err))
			continue
		}
		min := domain.IntFromPtrWithDefault(0, s.Min)
		max := domain.IntFromPtrWithDefault(0, s.Max)
		if min < 0 || max < 0 {
			errs = append(errs, fmt.Errorf("%s.shifts.%s: counts must not be negative", path, key))
		}
		if max > 0 && min > max {
			errs = append(errs, fmt.Errorf("%s.shifts.%s: min %d exceeds max %d", path, key, min, max))
		}
	}
	for k, st := range t.SubTasks {
		if strings.TrimSpace(st) == "" {
			errs = append(errs, fmt.Errorf("%s.sub_tasks[%d] is empty", path, k))
		}
	}
	return errs
}
