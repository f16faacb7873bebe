package snapshot

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// Snapshot is the stored header of one published group aggregate. The aggregate itself
// lives in the blob store under ObjectKey.
type Snapshot struct {
	ID          string
	Name        string
	ObjectKey   string
	LeagueCount int
	Teams       int
	Rounds      int
	Partial     bool
	CreatedAt   time.Time
}

func (s Snapshot) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("snapshot id is required")
	}
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if strings.TrimSpace(s.ObjectKey) == "" {
		return fmt.Errorf("snapshot object key is required")
	}
	if s.LeagueCount <= 0 {
		return fmt.Errorf("snapshot league count must be greater than zero")
	}

	return nil
}

// ValidateName accepts lowercase slugs such as "home-leagues-2025".
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid snapshot name %q", name)
	}
	return nil
}

// ObjectKey is the blob location for a snapshot, e.g. "adp/home-leagues/<id>.json".
func ObjectKey(name, id string) string {
	return path.Join("adp", name, id+".json")
}
