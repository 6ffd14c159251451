package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")

// AvailabilityUsecase computes the open slots of a (site, date, type)
// from the recurring hour templates minus the times already held by
// non-cancelled appointments. Dates and times are site-local wall-clock
// values; no timezone conversion happens anywhere in this path.
type AvailabilityUsecase interface {
	// ComputeAvailableSlots returns the distinct open times in ascending
	// order. An unknown site, inactive site, or malformed date yields an
	// empty set rather than an error; only storage failures propagate.
	ComputeAvailableSlots(ctx context.Context, date string, siteID int, typeID *int) ([]string, error)
}

type availabilityUsecase struct {
	log             *logrus.Logger
	siteRepo        repository.SiteRepository
	hourRepo        repository.AvailableHourRepository
	appointmentRepo repository.AppointmentRepository
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	siteRepo repository.SiteRepository,
	hourRepo repository.AvailableHourRepository,
	appointmentRepo repository.AppointmentRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:             log,
		siteRepo:        siteRepo,
		hourRepo:        hourRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *availabilityUsecase) ComputeAvailableSlots(ctx context.Context, date string, siteID int, typeID *int) ([]string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return []string{}, nil
	}

	site, err := u.siteRepo.FindByID(ctx, siteID)
	if err != nil {
		u.log.Warnf("Failed to load site %d: %+v", siteID, err)
		return nil, err
	}
	if site == nil || site.IsActive == nil || !*site.IsActive {
		return []string{}, nil
	}

	templates, err := u.hourRepo.FindActiveForSite(ctx, siteID, typeID)
	if err != nil {
		u.log.Warnf("Failed to load hour templates for site %d: %+v", siteID, err)
		return nil, err
	}

	occupied, err := u.appointmentRepo.FindOccupiedTimes(ctx, siteID, day)
	if err != nil {
		u.log.Warnf("Failed to load occupied times for site %d on %s: %+v", siteID, date, err)
		return nil, err
	}

	return openTimes(templates, occupied), nil
}

// openTimes subtracts the occupied times from the template times,
// collapsing duplicate templates into one entry, ascending.
func openTimes(templates []entity.AvailableHour, occupied []string) []string {
	taken := make(map[string]bool, len(occupied))
	for _, t := range occupied {
		taken[normalizeClock(t)] = true
	}

	seen := make(map[string]bool, len(templates))
	times := make([]string, 0, len(templates))
	for i := range templates {
		t := normalizeClock(templates[i].Time)
		if seen[t] || taken[t] {
			continue
		}
		seen[t] = true
		times = append(times, t)
	}
	sort.Strings(times)
	return times
}

// normalizeClock reduces a clock value to HH:MM. The time column comes
// back as HH:MM:SS from PostgreSQL while the API speaks HH:MM.
func normalizeClock(value string) string {
	if len(value) >= 5 {
		return value[:5]
	}
	return value
}

// validClock reports whether the value parses as an HH:MM wall-clock time
func validClock(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}
