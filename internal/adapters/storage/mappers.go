package storage

import (
	"strconv"
	"strings"

	"gittrainer/internal/domain"
)

// summaryModelToDomain converts a SummaryModel (GORM) to domain.Summary
func summaryModelToDomain(m SummaryModel) domain.Summary {
	return domain.Summary{
		SessionID:           m.SessionID,
		Player:              m.Player,
		StartedAt:           m.StartedAt,
		EndedAt:             m.EndedAt,
		DurationSeconds:     m.DurationSeconds,
		Commands:            m.Commands,
		Hints:               m.Hints,
		Solutions:           m.Solutions,
		CompletedStageIDs:   splitStageIDs(m.CompletedStageIDs),
		CompletedStageCount: m.CompletedStageCount,
		TotalStageCount:     m.TotalStageCount,
		Score:               m.Score,
	}
}

// domainToSummaryModel converts a domain.Summary to SummaryModel (GORM)
func domainToSummaryModel(s domain.Summary) SummaryModel {
	return SummaryModel{
		SessionID:           s.SessionID,
		Player:              s.Player,
		StartedAt:           s.StartedAt,
		EndedAt:             s.EndedAt,
		DurationSeconds:     s.DurationSeconds,
		Commands:            s.Commands,
		Hints:               s.Hints,
		Solutions:           s.Solutions,
		CompletedStageIDs:   joinStageIDs(s.CompletedStageIDs),
		CompletedStageCount: s.CompletedStageCount,
		TotalStageCount:     s.TotalStageCount,
		Score:               s.Score,
	}
}

func joinStageIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func splitStageIDs(raw string) []int {
	if raw == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
