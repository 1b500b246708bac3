// Package checklist holds the static documentary-requirement templates
// and the phase-progress computation derived from them.
package checklist

import (
	_ "embed"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"protrack/internal/domain/models"
)

//go:embed templates.yaml
var templatesYAML []byte

// Row is one required-document slot of a phase. Rows are template data,
// not database rows; uploads reference them by item id.
type Row struct {
	ID    int    `yaml:"id"`
	Label string `yaml:"label"`
}

var templates map[models.ProjectKind]map[models.Phase][]Row

func init() {
	raw := map[string]map[string][]Row{}
	if err := yaml.Unmarshal(templatesYAML, &raw); err != nil {
		panic(fmt.Sprintf("checklist: invalid embedded templates: %v", err))
	}

	templates = make(map[models.ProjectKind]map[models.Phase][]Row, len(raw))
	for kind, phases := range raw {
		m := make(map[models.Phase][]Row, len(phases))
		for phase, rows := range phases {
			m[models.Phase(phase)] = rows
		}
		templates[models.ProjectKind(kind)] = m
	}
}

// Phases returns the checklist phases of a program kind, in display order.
func Phases(kind models.ProjectKind) []models.Phase {
	switch kind {
	case models.KindCest:
		return []models.Phase{models.PhaseInitiation, models.PhaseImplementation, models.PhaseMonitoring}
	case models.KindSetup:
		return []models.Phase{models.PhaseInitiation, models.PhaseImplementation}
	default:
		return nil
	}
}

// Template returns the checklist rows for a kind and phase.
// Unknown combinations return nil.
func Template(kind models.ProjectKind, phase models.Phase) []Row {
	return templates[kind][phase]
}

// HasPhase reports whether the phase belongs to the kind's checklist.
func HasPhase(kind models.ProjectKind, phase models.Phase) bool {
	return len(templates[kind][phase]) > 0
}

// ItemID builds the "{PHASE}-{rowID}" key correlating an upload to a row.
func ItemID(phase models.Phase, rowID int) string {
	return fmt.Sprintf("%s-%d", phase, rowID)
}

var itemIDPattern = regexp.MustCompile(`^[A-Z]+-[0-9]+$`)

// ParseItemID splits a template item id into its phase and row id.
// Only the format is checked; an id pointing at no template row is legal
// (the upload is stored but never counted).
func ParseItemID(itemID string) (models.Phase, int, error) {
	if !itemIDPattern.MatchString(itemID) {
		return "", 0, fmt.Errorf("template item id %q must match PHASE-number", itemID)
	}
	i := strings.LastIndex(itemID, "-")
	n, err := strconv.Atoi(itemID[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("template item id %q: %w", itemID, err)
	}
	return models.Phase(itemID[:i]), n, nil
}

// Progress computes checklist completion for one phase: a row counts as
// uploaded when at least one document carries its item id. The percent
// rounds half up (1 of 3 rows is 33, 2 of 3 is 67).
func Progress(kind models.ProjectKind, phase models.Phase, docs []models.DocumentMeta) (uploaded, total, percent int) {
	rows := Template(kind, phase)
	total = len(rows)
	if total == 0 {
		return 0, 0, 0
	}

	have := make(map[string]bool, len(docs))
	for _, d := range docs {
		have[d.TemplateItemID] = true
	}

	for _, r := range rows {
		if have[ItemID(phase, r.ID)] {
			uploaded++
		}
	}

	percent = int(math.Round(float64(uploaded) / float64(total) * 100))
	return uploaded, total, percent
}
