package adp

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
)

var (
	ErrSourceUnavailable = errors.New("draft source unavailable")
	ErrNoDraftsFound     = errors.New("no drafts found")
	ErrSettingsMismatch  = errors.New("draft settings mismatch")
	ErrMalformedPick     = errors.New("malformed pick")
)

// maxNamedMismatches bounds how many offending drafts a mismatch message names.
const maxNamedMismatches = 5

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindSourceUnavailable
	KindNoDraftsFound
	KindSettingsMismatch
	KindMalformedPick
)

func (k ErrorKind) String() string {
	switch k {
	case KindSourceUnavailable:
		return "source_unavailable"
	case KindNoDraftsFound:
		return "no_drafts_found"
	case KindSettingsMismatch:
		return "settings_mismatch"
	case KindMalformedPick:
		return "malformed_pick"
	default:
		return "unknown"
	}
}

// KindOf classifies err against the aggregation error taxonomy.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrSettingsMismatch):
		return KindSettingsMismatch
	case errors.Is(err, ErrNoDraftsFound):
		return KindNoDraftsFound
	case errors.Is(err, ErrSourceUnavailable):
		return KindSourceUnavailable
	case errors.Is(err, ErrMalformedPick):
		return KindMalformedPick
	default:
		return KindUnknown
	}
}

// SourceUnavailable marks err so callers can match it with ErrSourceUnavailable.
func SourceUnavailable(err error, format string, args ...any) error {
	if err == nil {
		err = errors.Newf(format, args...)
	} else {
		err = errors.Wrapf(err, format, args...)
	}
	return errors.Mark(err, ErrSourceUnavailable)
}

// SettingsMismatch names one included draft whose grid differs from the reference.
type SettingsMismatch struct {
	LeagueID   string
	LeagueName string
	DraftID    string
	Settings   draft.Settings
}

func (m SettingsMismatch) label() string {
	name := strings.TrimSpace(m.LeagueName)
	if name == "" {
		name = m.LeagueID
	}
	return fmt.Sprintf("%s (draft %s) has %s", name, m.DraftID, m.Settings)
}

// SettingsMismatchError is returned when a group mixes drafts of different shapes.
type SettingsMismatchError struct {
	Expected   draft.Settings
	Reference  string
	Mismatches []SettingsMismatch
}

func (e *SettingsMismatchError) Error() string {
	var b strings.Builder
	b.WriteString(ErrSettingsMismatch.Error())
	fmt.Fprintf(&b, ": expected %s from %s", e.Expected, e.Reference)

	named := e.Mismatches
	if len(named) > maxNamedMismatches {
		named = named[:maxNamedMismatches]
	}
	for _, m := range named {
		b.WriteString("; ")
		b.WriteString(m.label())
	}
	if extra := len(e.Mismatches) - len(named); extra > 0 {
		fmt.Fprintf(&b, "; and %d more", extra)
	}

	return b.String()
}

func (e *SettingsMismatchError) Is(target error) bool {
	return target == ErrSettingsMismatch
}
