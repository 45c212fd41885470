package services

import (
	"context"
	"database/sql"
	"strings"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"
)

type AdService struct {
	DB        *sql.DB
	RequestID string
}

func (s AdService) ads() repositories.AdRepository {
	if s.DB != nil {
		return repositories.AdRepository{DB: s.DB}
	}
	return repositories.AdRepository{DB: intconfig.DB}
}

func (s AdService) Create(ctx context.Context, p models.AdPayload) (models.Ad, error) {
	a, err := adFromPayload(p)
	if err != nil {
		return a, err
	}
	id, err := s.ads().Insert(ctx, a)
	if err != nil {
		return models.Ad{}, err
	}
	a.ID = id
	utils.LogEvent(s.RequestID, "ads", "create", "ad spend recorded", "ad_id", id)
	return a, nil
}

func (s AdService) List(ctx context.Context) ([]models.Ad, error) {
	return s.ads().List(ctx)
}

func (s AdService) Get(ctx context.Context, id int64) (models.Ad, error) {
	return s.ads().GetByID(ctx, id)
}

func (s AdService) Update(ctx context.Context, id int64, p models.AdPayload) (models.Ad, error) {
	repo := s.ads()
	cur, err := repo.GetByID(ctx, id)
	if err != nil {
		return cur, err
	}
	a, err := adFromPayload(p)
	if err != nil {
		return models.Ad{}, err
	}
	a.ID, a.CreatedAt = cur.ID, cur.CreatedAt
	if err := repo.Update(ctx, a); err != nil {
		return models.Ad{}, err
	}
	utils.LogEvent(s.RequestID, "ads", "update", "ad spend updated", "ad_id", id)
	return a, nil
}

func (s AdService) Delete(ctx context.Context, id int64) error {
	if err := s.ads().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "ads", "delete", "ad spend deleted", "ad_id", id)
	return nil
}

// adFromPayload requires all three fields; a zero amount counts as missing.
func adFromPayload(p models.AdPayload) (models.Ad, error) {
	if strings.TrimSpace(p.Date) == "" || strings.TrimSpace(p.PaymentMode) == "" || p.Amount == 0 {
		return models.Ad{}, domain.ValidationError{Msg: "date, paymentMode and amount are required"}
	}
	if p.Amount < 0 {
		return models.Ad{}, domain.ValidationError{Field: "amount", Msg: "must not be negative"}
	}
	d, err := utils.ParseTimestamp(p.Date)
	if err != nil {
		return models.Ad{}, domain.ValidationError{Field: "date", Msg: "invalid date", Err: err}
	}
	return models.Ad{Date: d, PaymentMode: strings.TrimSpace(p.PaymentMode), Amount: p.Amount}, nil
}
