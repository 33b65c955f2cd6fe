package store

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"dida-sync/internal/model"
)

const frontmatterDelimiter = "---"

// startDateLayouts are tried in order when parsing the startDate field.
var startDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// StringOrList accepts a YAML scalar or sequence and normalizes it to a
// string slice.
type StringOrList []string

func (s *StringOrList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var one string
		if err := value.Decode(&one); err != nil {
			return err
		}
		*s = []string{one}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*s = many
		return nil
	}
	return fmt.Errorf("expected string or list, got yaml kind %d", value.Kind)
}

type documentFrontmatter struct {
	Dida *syncFrontmatter `yaml:"dida"`
}

type syncFrontmatter struct {
	Type        string       `yaml:"type"`
	ProjectID   string       `yaml:"projectId"`
	TaskID      string       `yaml:"taskId"`
	StartDate   string       `yaml:"startDate"`
	Status      string       `yaml:"status"`
	Tags        StringOrList `yaml:"tags"`
	ExcludeTags StringOrList `yaml:"excludeTags"`
}

// ParseFrontmatter reads the `dida:` mapping of a document's YAML
// frontmatter into filter criteria. The service type defaults to dida when
// the mapping does not name one.
func ParseFrontmatter(doc string) (model.Criteria, error) {
	front, _ := splitFrontmatter(doc)
	if front == "" {
		return model.Criteria{}, ErrMissingFrontmatter
	}

	raw := strings.TrimPrefix(front, frontmatterDelimiter)
	raw = strings.TrimSuffix(strings.TrimRight(raw, "\n"), frontmatterDelimiter)

	var fm documentFrontmatter
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return model.Criteria{}, fmt.Errorf("%v: %w", err, ErrInvalidFrontmatter)
	}
	if fm.Dida == nil {
		return model.Criteria{}, ErrMissingFrontmatter
	}

	c := model.Criteria{
		ProjectID:   fm.Dida.ProjectID,
		TaskID:      fm.Dida.TaskID,
		Tags:        fm.Dida.Tags,
		ExcludeTags: fm.Dida.ExcludeTags,
		Service:     model.ServiceDida,
	}

	if fm.Dida.Type != "" {
		svc, ok := model.ParseService(fm.Dida.Type)
		if !ok {
			return model.Criteria{}, fmt.Errorf("unknown type %q: %w", fm.Dida.Type, ErrInvalidFrontmatter)
		}
		c.Service = svc
	}

	switch fm.Dida.Status {
	case "":
	case "completed":
		status := model.StatusCompleted
		c.Status = &status
	case "uncompleted":
		status := model.StatusUnCompleted
		c.Status = &status
	default:
		return model.Criteria{}, fmt.Errorf("unknown status %q: %w", fm.Dida.Status, ErrInvalidFrontmatter)
	}

	if fm.Dida.StartDate != "" {
		parsed, ok := parseStartDate(fm.Dida.StartDate)
		if !ok {
			return model.Criteria{}, fmt.Errorf("unparseable startDate %q: %w", fm.Dida.StartDate, ErrInvalidFrontmatter)
		}
		c.StartDate = &parsed
	}

	return c, nil
}

func parseStartDate(s string) (time.Time, bool) {
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// splitFrontmatter separates a leading `--- … ---` block from the rest of the
// document. front keeps its delimiters; both return values are "" / the whole
// document when there is no block.
func splitFrontmatter(doc string) (front, body string) {
	if !strings.HasPrefix(doc, frontmatterDelimiter+"\n") {
		return "", doc
	}
	rest := doc[len(frontmatterDelimiter)+1:]
	idx := strings.Index(rest, "\n"+frontmatterDelimiter)
	if idx < 0 {
		return "", doc
	}
	end := len(frontmatterDelimiter) + 1 + idx + 1 + len(frontmatterDelimiter)
	front = doc[:end]
	body = strings.TrimPrefix(doc[end:], "\n")
	return front, body
}
