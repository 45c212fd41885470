package services

import (
	"context"
	"database/sql"
	"net/url"
	"regexp"
	"strings"
	"time"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

const gstLength = 15

type CompanyService struct {
	DB        *sql.DB
	Now       func() time.Time
	RequestID string
}

func (s CompanyService) companies() repositories.CompanyRepository {
	if s.DB != nil {
		return repositories.CompanyRepository{DB: s.DB}
	}
	return repositories.CompanyRepository{DB: intconfig.DB}
}

func (s CompanyService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s CompanyService) Create(ctx context.Context, rc domain.RequestContext, p models.CompanyPayload) (models.Company, error) {
	var c models.Company
	applyCompanyPayload(&c, p)
	if err := validateCompany(c); err != nil {
		return c, err
	}
	repo := s.companies()
	if err := s.ensureKeyFree(ctx, repo, c.Key, 0); err != nil {
		return c, err
	}
	by := rc.UserID
	c.CreatedBy, c.UpdatedBy = &by, &by

	id, err := repo.Insert(ctx, c)
	if err != nil {
		return models.Company{}, companyWriteError(err)
	}
	now := s.now()
	c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
	utils.LogEvent(s.RequestID, "company", "create", "company created", "company_id", id, "key", c.Key)
	return c, nil
}

func (s CompanyService) List(ctx context.Context) ([]models.Company, error) {
	return s.companies().List(ctx)
}

func (s CompanyService) Get(ctx context.Context, id int64) (models.Company, error) {
	return s.companies().GetByID(ctx, id)
}

func (s CompanyService) Update(ctx context.Context, rc domain.RequestContext, id int64, p models.CompanyPayload) (models.Company, error) {
	repo := s.companies()
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return c, err
	}
	oldKey := c.Key
	applyCompanyPayload(&c, p)
	if err := validateCompany(c); err != nil {
		return models.Company{}, err
	}
	if c.Key != oldKey {
		if err := s.ensureKeyFree(ctx, repo, c.Key, c.ID); err != nil {
			return models.Company{}, err
		}
	}
	by := rc.UserID
	c.UpdatedBy = &by
	if err := repo.Update(ctx, c); err != nil {
		return models.Company{}, companyWriteError(err)
	}
	c.UpdatedAt = s.now()
	utils.LogEvent(s.RequestID, "company", "update", "company updated", "company_id", id)
	return c, nil
}

// Delete is a soft delete; invoices keep resolving the company.
func (s CompanyService) Delete(ctx context.Context, rc domain.RequestContext, id int64) error {
	by := rc.UserID
	if err := s.companies().SoftDelete(ctx, id, &by, s.now()); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "company", "delete", "company soft deleted", "company_id", id)
	return nil
}

// ensureKeyFree gives a readable conflict up front; uniq_company_active_key is
// what keeps concurrent writers from sharing a key.
func (s CompanyService) ensureKeyFree(ctx context.Context, repo repositories.CompanyRepository, key string, excludeID int64) error {
	taken, err := repo.KeyTaken(ctx, key, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ConflictError{Resource: "company", Msg: "key already in use"}
	}
	return nil
}

func applyCompanyPayload(c *models.Company, p models.CompanyPayload) {
	setString(&c.Key, p.Key)
	setString(&c.Name, p.Name)
	setString(&c.Address, p.Address)
	setString(&c.Website, p.Website)
	setString(&c.GST, p.GST)
	setString(&c.Mobile, p.Mobile)
	setString(&c.Logo, p.Logo)
	setString(&c.Stamp, p.Stamp)
	setString(&c.Description, p.Description)
	if p.Bank != nil {
		b := *p.Bank
		c.Bank = models.BankDetails{
			ModeOfPayment:  strings.TrimSpace(b.ModeOfPayment),
			Holder:         strings.TrimSpace(b.Holder),
			BranchAddress:  strings.TrimSpace(b.BranchAddress),
			BankName:       strings.TrimSpace(b.BankName),
			CurrentAccount: strings.TrimSpace(b.CurrentAccount),
			IFSC:           strings.ToUpper(strings.TrimSpace(b.IFSC)),
		}
	}
	c.GST = strings.ToUpper(c.GST)
}

func validateCompany(c models.Company) error {
	switch {
	case c.Key == "":
		return domain.ValidationError{Field: "key", Msg: "required"}
	case c.Name == "":
		return domain.ValidationError{Field: "name", Msg: "required"}
	case c.Mobile == "":
		return domain.ValidationError{Field: "mobile", Msg: "required"}
	case !mobilePattern.MatchString(c.Mobile):
		return domain.ValidationError{Field: "mobile", Msg: "must be 10 to 15 digits, optionally prefixed with +"}
	case c.GST != "" && len(c.GST) != gstLength:
		return domain.ValidationError{Field: "gst", Msg: "must be exactly 15 characters"}
	case c.Website != "" && !absoluteURL(c.Website):
		return domain.ValidationError{Field: "website", Msg: "must be a valid URL"}
	}
	return nil
}

func absoluteURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func companyWriteError(err error) error {
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "company", Msg: "key already in use", Err: err}
	}
	return err
}
