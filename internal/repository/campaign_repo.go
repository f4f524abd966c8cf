package repository

import (
	"context"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
)

type CampaignRepository struct {
	db DBTX
}

func NewCampaignRepository(db DBTX) *CampaignRepository {
	return &CampaignRepository{db: db}
}

type CreateCampaignInput struct {
	BusinessID  int64
	Title       string
	Description *string
	Bundles     []string
	BudgetRange *string
	Generated   bool
}

func (r *CampaignRepository) Create(ctx context.Context, input CreateCampaignInput) (*models.Campaign, error) {
	query := `
		INSERT INTO campaigns (business_id, title, description, status, bundles, budget_range, generated)
		VALUES ($1, $2, $3, 'draft', $4, $5, $6)
		RETURNING id, business_id, title, description, status, bundles, budget_range, generated, created_at, updated_at
	`

	var campaign models.Campaign
	err := r.db.QueryRow(ctx, query,
		input.BusinessID,
		input.Title,
		input.Description,
		input.Bundles,
		input.BudgetRange,
		input.Generated,
	).Scan(
		&campaign.ID,
		&campaign.BusinessID,
		&campaign.Title,
		&campaign.Description,
		&campaign.Status,
		&campaign.Bundles,
		&campaign.BudgetRange,
		&campaign.Generated,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, campaignID int64) (*models.Campaign, error) {
	query := `
		SELECT id, business_id, title, description, status, bundles, budget_range, generated, created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`
	var campaign models.Campaign
	err := r.db.QueryRow(ctx, query, campaignID).Scan(
		&campaign.ID,
		&campaign.BusinessID,
		&campaign.Title,
		&campaign.Description,
		&campaign.Status,
		&campaign.Bundles,
		&campaign.BudgetRange,
		&campaign.Generated,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *CampaignRepository) ListByBusinessID(ctx context.Context, businessID int64) ([]models.Campaign, error) {
	query := `
		SELECT id, business_id, title, description, status, bundles, budget_range, generated, created_at, updated_at
		FROM campaigns
		WHERE business_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]models.Campaign, 0)
	for rows.Next() {
		var campaign models.Campaign
		if err := rows.Scan(
			&campaign.ID,
			&campaign.BusinessID,
			&campaign.Title,
			&campaign.Description,
			&campaign.Status,
			&campaign.Bundles,
			&campaign.BudgetRange,
			&campaign.Generated,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return campaigns, nil
}

// UpdateStatusIfCurrent performs a compare-and-set on the campaign status.
// pgx.ErrNoRows signals the campaign moved since it was read.
func (r *CampaignRepository) UpdateStatusIfCurrent(ctx context.Context, campaignID int64, currentStatus, nextStatus string) (*models.Campaign, error) {
	query := `
		UPDATE campaigns
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING id, business_id, title, description, status, bundles, budget_range, generated, created_at, updated_at
	`

	var campaign models.Campaign
	err := r.db.QueryRow(ctx, query, nextStatus, campaignID, currentStatus).Scan(
		&campaign.ID,
		&campaign.BusinessID,
		&campaign.Title,
		&campaign.Description,
		&campaign.Status,
		&campaign.Bundles,
		&campaign.BudgetRange,
		&campaign.Generated,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}
