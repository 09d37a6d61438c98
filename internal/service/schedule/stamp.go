package schedule

import (
	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/slot"
)

// stampArticle maps a slot onto the timestamps the caller will persist.
// Imported articles keep their original created/published times when
// known; new articles are created and published at the slot time.
func stampArticle(g *slot.Generator, article domain.Article, s domain.ScheduleSlot) domain.ScheduledArticle {
	scheduled := domain.ScheduledArticle{
		ArticleID:   article.ID,
		Slot:        s,
		ScheduledAt: s.Timestamp,
		CreatedAt:   s.Timestamp,
		PublishedAt: s.Timestamp,
	}

	if s.Classification.IsImported() {
		scheduled.Slot.OriginalCreatedAt = article.OriginalCreatedAt
		scheduled.Slot.OriginalPublishedAt = article.OriginalPublishedAt
		if article.OriginalCreatedAt != nil {
			scheduled.CreatedAt = *article.OriginalCreatedAt
		}
		if article.OriginalPublishedAt != nil {
			scheduled.PublishedAt = *article.OriginalPublishedAt
		}
	}

	scheduled.UpdatedAt = g.GenerateHumanizedUpdatedAt(s)
	return scheduled
}
