package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/snapshot"
	"gopkg.in/yaml.v3"
)

type groupsFile struct {
	Groups []snapshot.Group `yaml:"groups"`
}

// LoadSnapshotGroups reads the snapshot groups rebuilt by the scheduled job. An empty path
// yields no groups.
//
//	groups:
//	  - name: home
//	    selections:
//	      - league_id: "1048"
//	        draft_id: "1049"
func LoadSnapshotGroups(path string) ([]snapshot.Group, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot groups %s: %w", path, err)
	}

	return ParseSnapshotGroups(raw)
}

func ParseSnapshotGroups(raw []byte) ([]snapshot.Group, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)

	var file groupsFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode snapshot groups: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Groups))
	for i := range file.Groups {
		group := &file.Groups[i]
		group.Name = strings.TrimSpace(group.Name)
		for j := range group.Selections {
			group.Selections[j] = group.Selections[j].Normalize()
		}
		if err := group.Validate(); err != nil {
			return nil, fmt.Errorf("snapshot group %d: %w", i, err)
		}
		if _, dup := seen[group.Name]; dup {
			return nil, fmt.Errorf("duplicate snapshot group %q", group.Name)
		}
		seen[group.Name] = struct{}{}
	}

	return file.Groups, nil
}
