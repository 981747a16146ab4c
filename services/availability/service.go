package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"healthhub/config"
	appointmentRepo "healthhub/database/repository/appointment"
	doctorRepo "healthhub/database/repository/doctor"
	"healthhub/models"
	"healthhub/services/scheduling"
	"healthhub/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// cacheTTL bounds how stale a cached availability response may be. Bookings
// invalidate the key eagerly, so the TTL only covers out-of-band writes.
const cacheTTL = 60 * time.Second

// Result is the response of an availability query. TotalSlots counts the
// candidate slots of the day's template; BookedSlots counts the occupying
// appointments subtracted from them.
type Result struct {
	Doctor         models.DoctorSummary `json:"doctor"`
	Date           string               `json:"date"`
	AvailableSlots []string             `json:"availableSlots"`
	TotalSlots     int                  `json:"totalSlots"`
	BookedSlots    int                  `json:"bookedSlots"`
}

// Service answers slot availability queries for a doctor and date.
type Service interface {
	Query(ctx context.Context, doctorID, date string) (*Result, error)
	Invalidate(ctx context.Context, doctorID, date string)
}

// DefaultService implements Service on top of the doctor and appointment
// repositories, with a short-lived Redis cache in front.
type DefaultService struct {
	DoctorRepo doctorRepo.DoctorRepository
	ApptRepo   appointmentRepo.AppointmentRepository
	Cache      *redis.Client
}

// NewDefaultService constructs the production availability service.
func NewDefaultService(doctors doctorRepo.DoctorRepository, appts appointmentRepo.AppointmentRepository) *DefaultService {
	return &DefaultService{
		DoctorRepo: doctors,
		ApptRepo:   appts,
		Cache:      utils.GetCacheClient(),
	}
}

// Query computes the free slots for one doctor on one date.
//
// The day's candidate slots come from the doctor's weekly template; a doctor
// without any template falls back to the configured default working window.
// A candidate is available when no scheduled, confirmed or in-progress
// appointment overlaps its interval. A day the doctor marked unavailable
// yields an empty slot list, not an error.
func (s *DefaultService) Query(ctx context.Context, doctorID, date string) (*Result, error) {
	if doctorID == "" {
		return nil, &scheduling.MissingParameterError{Param: "doctorId"}
	}
	if date == "" {
		return nil, &scheduling.MissingParameterError{Param: "date"}
	}

	dayOfWeek, err := scheduling.WeekdayName(date)
	if err != nil {
		return nil, err
	}

	if cached := s.fromCache(ctx, doctorID, date); cached != nil {
		return cached, nil
	}

	doctor, err := s.DoctorRepo.GetByIDWithProjection(doctorID, bson.M{
		"id":              1,
		"name":            1,
		"specialization":  1,
		"consultationFee": 1,
		"availability":    1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if doctor == nil {
		return nil, &scheduling.DoctorNotFoundError{DoctorID: doctorID}
	}

	candidates, slotMinutes, err := s.candidateSlots(doctor, dayOfWeek)
	if err != nil {
		return nil, err
	}

	occupying, err := s.ApptRepo.GetOccupying(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	available := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		start, err := scheduling.ParseClock(slot)
		if err != nil {
			continue
		}
		if !scheduling.HasConflict(start, slotMinutes, occupying) {
			available = append(available, slot)
		}
	}

	result := &Result{
		Doctor:         doctor.Summary(),
		Date:           date,
		AvailableSlots: available,
		TotalSlots:     len(candidates),
		BookedSlots:    len(occupying),
	}
	s.toCache(ctx, doctorID, date, result)
	return result, nil
}

// candidateSlots resolves the day's slot starts and the slot duration used
// for overlap checks.
func (s *DefaultService) candidateSlots(doctor *models.Doctor, dayOfWeek string) ([]string, int, error) {
	if len(doctor.Availability) == 0 {
		cfg := config.AppConfig
		slots, err := scheduling.GenerateWindowSlots(cfg.DefaultWorkStart, cfg.DefaultWorkEnd, cfg.DefaultSlotMinutes)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid default working window: %w", err)
		}
		return slots, cfg.DefaultSlotMinutes, nil
	}

	slots, err := scheduling.GenerateSlots(doctor.Availability, dayOfWeek)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid schedule template for doctor %s: %w", doctor.ID, err)
	}

	slotMinutes := scheduling.DefaultSlotMinutes
	if day, ok := doctor.Availability[dayOfWeek]; ok && day.SlotDurationMinutes > 0 {
		slotMinutes = day.SlotDurationMinutes
	}
	return slots, slotMinutes, nil
}

// Invalidate drops the cached availability for (doctorID, date). Booking and
// cancellation paths call it so the next query reflects the change.
func (s *DefaultService) Invalidate(ctx context.Context, doctorID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, cacheKey(doctorID, date)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("doctorId", doctorID), zap.String("date", date), zap.Error(err))
	}
}

func cacheKey(doctorID, date string) string {
	return utils.AvailabilityCachePrefix + doctorID + ":" + date
}

func (s *DefaultService) fromCache(ctx context.Context, doctorID, date string) *Result {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, cacheKey(doctorID, date)).Bytes()
	if err != nil {
		return nil
	}
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

func (s *DefaultService) toCache(ctx context.Context, doctorID, date string, result *Result) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(doctorID, date), raw, cacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability",
			zap.String("doctorId", doctorID), zap.Error(err))
	}
}
