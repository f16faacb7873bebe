package snapshot

import (
	"fmt"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
)

// Group is a named set of drafts rebuilt into a snapshot on schedule.
type Group struct {
	Name       string            `yaml:"name" json:"name"`
	Selections []draft.Selection `yaml:"selections" json:"selections"`
	Include    []string          `yaml:"include,omitempty" json:"include,omitempty"`
}

func (g Group) Validate() error {
	if err := ValidateName(g.Name); err != nil {
		return err
	}
	if len(g.Selections) == 0 {
		return fmt.Errorf("group %s has no selections", g.Name)
	}
	for i, sel := range g.Selections {
		if err := sel.Validate(); err != nil {
			return fmt.Errorf("group %s selection %d: %w", g.Name, i, err)
		}
	}

	return nil
}
