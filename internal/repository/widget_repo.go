package repository

import (
	"context"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
)

type WidgetRepository struct {
	db DBTX
}

func NewWidgetRepository(db DBTX) *WidgetRepository {
	return &WidgetRepository{db: db}
}

type CreateWidgetInput struct {
	UserID int64
	Type   string
	Title  string
	Size   string
}

type UpdateWidgetInput struct {
	Title *string
	Size  *string
}

func (r *WidgetRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Widget, error) {
	query := `
		SELECT id, user_id, type, title, size, position, created_at, updated_at
		FROM dashboard_widgets
		WHERE user_id = $1
		ORDER BY position, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	widgets := make([]models.Widget, 0)
	for rows.Next() {
		var widget models.Widget
		if err := rows.Scan(
			&widget.ID,
			&widget.UserID,
			&widget.Type,
			&widget.Title,
			&widget.Size,
			&widget.Position,
			&widget.CreatedAt,
			&widget.UpdatedAt,
		); err != nil {
			return nil, err
		}
		widgets = append(widgets, widget)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return widgets, nil
}

// Create appends the widget at the end of the user's board.
func (r *WidgetRepository) Create(ctx context.Context, input CreateWidgetInput) (*models.Widget, error) {
	query := `
		INSERT INTO dashboard_widgets (user_id, type, title, size, position)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM dashboard_widgets WHERE user_id = $1))
		RETURNING id, user_id, type, title, size, position, created_at, updated_at
	`

	var widget models.Widget
	err := r.db.QueryRow(ctx, query, input.UserID, input.Type, input.Title, input.Size).Scan(
		&widget.ID,
		&widget.UserID,
		&widget.Type,
		&widget.Title,
		&widget.Size,
		&widget.Position,
		&widget.CreatedAt,
		&widget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &widget, nil
}

func (r *WidgetRepository) Update(ctx context.Context, userID, widgetID int64, input UpdateWidgetInput) (*models.Widget, error) {
	query := `
		UPDATE dashboard_widgets
		SET title = COALESCE($1, title),
			size = COALESCE($2, size),
			updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, type, title, size, position, created_at, updated_at
	`

	var widget models.Widget
	err := r.db.QueryRow(ctx, query, input.Title, input.Size, widgetID, userID).Scan(
		&widget.ID,
		&widget.UserID,
		&widget.Type,
		&widget.Title,
		&widget.Size,
		&widget.Position,
		&widget.CreatedAt,
		&widget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &widget, nil
}

// Delete removes the widget and closes the position gap it leaves.
func (r *WidgetRepository) Delete(ctx context.Context, userID, widgetID int64) error {
	query := `
		WITH removed AS (
			DELETE FROM dashboard_widgets
			WHERE id = $1 AND user_id = $2
			RETURNING position
		)
		UPDATE dashboard_widgets
		SET position = position - 1, updated_at = NOW()
		WHERE user_id = $2
		  AND position > (SELECT position FROM removed)
	`
	_, err := r.db.Exec(ctx, query, widgetID, userID)
	return err
}

func (r *WidgetRepository) Exists(ctx context.Context, userID, widgetID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM dashboard_widgets WHERE id = $1 AND user_id = $2)`,
		widgetID, userID,
	).Scan(&exists)
	return exists, err
}

// UpdatePositions rewrites positions to match the given id ordering.
func (r *WidgetRepository) UpdatePositions(ctx context.Context, userID int64, orderedIDs []int64) error {
	query := `
		UPDATE dashboard_widgets
		SET position = ordering.position, updated_at = NOW()
		FROM (
			SELECT id, ordinality - 1 AS position
			FROM UNNEST($1::bigint[]) WITH ORDINALITY AS t(id, ordinality)
		) AS ordering
		WHERE dashboard_widgets.id = ordering.id
		  AND dashboard_widgets.user_id = $2
	`
	_, err := r.db.Exec(ctx, query, orderedIDs, userID)
	return err
}

func (r *WidgetRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM dashboard_widgets WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}
