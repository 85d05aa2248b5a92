package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushr/hris-engine-go/internal/config"
	"github.com/campushr/hris-engine-go/internal/domain/approval"
	"github.com/campushr/hris-engine-go/internal/domain/attendance"
	"github.com/campushr/hris-engine-go/internal/domain/company"
	"github.com/campushr/hris-engine-go/internal/domain/holiday"
)

type holidayLookup struct {
	repo holiday.Repository
}

func NewHolidayLookup(repo holiday.Repository) attendance.HolidayLookup {
	return &holidayLookup{repo: repo}
}

func (l *holidayLookup) HolidayFlags(ctx context.Context, date time.Time) (bool, bool, bool, error) {
	holidays, err := l.repo.ListByDate(ctx, date)
	if err != nil {
		return false, false, false, fmt.Errorf("list holidays: %w", err)
	}

	var isNational, isCompany, isJointLeave bool
	for _, h := range holidays {
		switch h.Type {
		case holiday.TypeNational:
			isNational = true
		case holiday.TypeCompany:
			isCompany = true
		case holiday.TypeCollectiveLeave:
			isJointLeave = true
		}
	}
	return isNational, isCompany, isJointLeave, nil
}

// officeLocationProvider reads the primary office from the database and
// falls back to the configured office when none is stored.
type officeLocationProvider struct {
	repo     company.OfficeLocationRepository
	fallback config.OfficeConfig
}

func NewOfficeLocationProvider(repo company.OfficeLocationRepository, fallback config.OfficeConfig) attendance.OfficeLocationProvider {
	return &officeLocationProvider{repo: repo, fallback: fallback}
}

func (p *officeLocationProvider) OfficeLocation(ctx context.Context) (float64, float64, float64, error) {
	loc, err := p.repo.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, company.ErrOfficeLocationNotFound) {
			return p.fallback.Latitude, p.fallback.Longitude, float64(p.fallback.RadiusMeters), nil
		}
		return 0, 0, 0, fmt.Errorf("get primary office location: %w", err)
	}
	return loc.Latitude, loc.Longitude, loc.RadiusMeters, nil
}

type wfhApprovalLookup struct {
	repo approval.RequestRepository
}

func NewWfhApprovalLookup(repo approval.RequestRepository) attendance.WfhApprovalLookup {
	return &wfhApprovalLookup{repo: repo}
}

func (l *wfhApprovalLookup) HasApprovedWfh(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return l.repo.HasApprovedWfh(ctx, employeeID, date)
}
