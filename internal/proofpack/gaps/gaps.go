// Package gaps derives remediation gaps from a pack's health and documents.
//
// Analyze is deterministic: two runs over an unchanged pack return gaps that
// differ only in ID. Merge carries owner resolutions across regenerations.
package gaps

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"proofpack/internal/proofpack/models"
	"proofpack/internal/proofpack/score"
	id "proofpack/pkg/domain"
)

// ExpiryWarningWindow is how far ahead a document expiry raises a gap.
const ExpiryWarningWindow = 30 * 24 * time.Hour

// Targets per category. A sub-score below its target yields a gap.
var Targets = map[models.GapCategory]float64{
	models.GapCompleteness: 80,
	models.GapExpiration:   75,
	models.GapQuality:      70,
	models.GapRemediation:  60,
}

var recommendations = map[models.GapCategory]string{
	models.GapCompleteness: "Upload the missing mandatory documents for your industry",
	models.GapExpiration:   "Renew documents that are expired or close to expiry",
	models.GapQuality:      "Replace low-quality or illegible documents",
	models.GapRemediation:  "Close outstanding remediation actions from earlier reviews",
}

var urgency = map[models.GapSeverity]string{
	models.SeverityCritical: "Urgent",
	models.SeverityHigh:     "High priority",
	models.SeverityMedium:   "Recommended",
	models.SeverityLow:      "Optional",
}

// SeverityFor grades a shortfall in points below target.
func SeverityFor(shortfall float64) models.GapSeverity {
	switch {
	case shortfall > 30:
		return models.SeverityCritical
	case shortfall > 20:
		return models.SeverityHigh
	case shortfall > 10:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// Analyze returns the gap set for pack at health, ordered by category then
// document id. Every gap is open with a fresh ID.
func Analyze(pack *models.ProofPack, health score.PackHealth, now time.Time) []models.Gap {
	out := make([]models.Gap, 0, 4)

	subScores := []struct {
		category models.GapCategory
		value    float64
	}{
		{models.GapCompleteness, health.Completeness},
		{models.GapExpiration, health.Expiration},
		{models.GapQuality, health.Quality},
		{models.GapRemediation, health.Remediation},
	}
	for _, s := range subScores {
		target := Targets[s.category]
		if s.value >= target {
			continue
		}
		severity := SeverityFor(target - s.value)
		out = append(out, models.Gap{
			ID:       id.GapID(uuid.New()),
			Category: s.category,
			Severity: severity,
			Recommendation: fmt.Sprintf("%s: %s (score %.0f, target %.0f)",
				urgency[severity], recommendations[s.category], s.value, target),
			Status: models.GapOpen,
		})
	}

	horizon := now.Add(ExpiryWarningWindow)
	for _, doc := range pack.Documents {
		if doc.ExpirationDate == nil || doc.ExpirationDate.After(horizon) {
			continue
		}
		docID := doc.ID
		severity := models.SeverityHigh
		recommendation := fmt.Sprintf("Renew %s before it expires on %s",
			doc.FileName, doc.ExpirationDate.UTC().Format(time.DateOnly))
		if !doc.ExpirationDate.After(now) {
			severity = models.SeverityCritical
			recommendation = fmt.Sprintf("Replace %s, which expired on %s",
				doc.FileName, doc.ExpirationDate.UTC().Format(time.DateOnly))
		}
		out = append(out, models.Gap{
			ID:             id.GapID(uuid.New()),
			Category:       models.GapExpiration,
			Severity:       severity,
			Recommendation: recommendation,
			Status:         models.GapOpen,
			DocumentID:     &docID,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Category.Rank() != b.Category.Rank() {
			return a.Category.Rank() < b.Category.Rank()
		}
		return documentKey(a) < documentKey(b)
	})
	return out
}

// score gaps sort ahead of document gaps within a category
func documentKey(g models.Gap) string {
	if g.DocumentID == nil {
		return ""
	}
	return g.DocumentID.String()
}

// Merge carries the resolution of a previous gap onto a regenerated gap with
// the same content. Each previous gap is consumed at most once.
func Merge(previous, next []models.Gap) []models.Gap {
	used := make([]bool, len(previous))
	for i := range next {
		for j, prev := range previous {
			if used[j] || prev.Status != models.GapResolved || !prev.SameContent(next[i]) {
				continue
			}
			used[j] = true
			next[i].Status = models.GapResolved
			next[i].ResolvedAt = prev.ResolvedAt
			break
		}
	}
	return next
}

// NewlyExpiring returns document-bound gaps in next for documents that had no
// expiry gap in previous. A document already warned about stays quiet when
// its gap is reworded or escalates to expired.
func NewlyExpiring(previous, next []models.Gap) []models.Gap {
	warned := make(map[id.DocumentID]struct{}, len(previous))
	for _, prev := range previous {
		if prev.DocumentID != nil {
			warned[*prev.DocumentID] = struct{}{}
		}
	}
	var out []models.Gap
	for _, g := range next {
		if g.DocumentID == nil {
			continue
		}
		if _, ok := warned[*g.DocumentID]; !ok {
			out = append(out, g)
		}
	}
	return out
}
