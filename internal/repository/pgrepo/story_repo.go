package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

type StoryRepository struct {
	conn uow.DBTX
}

func NewStoryRepository(conn uow.DBTX) *StoryRepository {
	return &StoryRepository{conn: conn}
}

// GetExpired возвращает истории с истекшим сроком жизни. Лимит ограничивает
// объем одной итерации свипера.
func (s *StoryRepository) GetExpired(ctx context.Context, now time.Time, limit int32) ([]domain.Story, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, profile_id, media_url, expires_at
		FROM stories
		WHERE expires_at < $1
		ORDER BY expires_at
		LIMIT $2`, now, limit)
	if err != nil {
		return nil, convertErr(err, "getting expired stories")
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		var story domain.Story
		if scanErr := rows.Scan(&story.ID, &story.ProfileID, &story.MediaURL, &story.ExpiresAt); scanErr != nil {
			return nil, convertErr(scanErr, "scanning expired story")
		}
		stories = append(stories, story)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "reading expired stories")
	}
	return stories, nil
}

// DeleteByIDs удаляет метаданные историй одним батчем. Уже удаленные id
// просто не попадают под условие, повторный запуск безопасен.
func (s *StoryRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.conn.Exec(ctx, `DELETE FROM stories WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, convertErr(err, "deleting stories")
	}
	return tag.RowsAffected(), nil
}
