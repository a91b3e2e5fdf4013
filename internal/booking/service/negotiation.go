package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"roomdesk/internal/booking/repository"
	"roomdesk/internal/booking/validator"
	"roomdesk/internal/catalog"
	"roomdesk/internal/notify"
	"roomdesk/internal/schedule"
	"roomdesk/pkg/config"
	"roomdesk/pkg/model"
	"roomdesk/pkg/sanitizer"

	bookingerrors "roomdesk/internal/booking/errors"
	apperrors "roomdesk/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// SubmitResult carries the staged candidate back to the caller together
// with the fanout delivery report.
type SubmitResult struct {
	Booking  *model.Booking        `json:"booking"`
	Delivery notify.DeliveryReport `json:"delivery"`
}

// ResolveResult reports the outcome of an admin decision. Booking is the
// candidate the decision applied to, with its final status.
type ResolveResult struct {
	Booking  *model.Booking        `json:"booking"`
	Delivery notify.DeliveryReport `json:"delivery"`
}

type NegotiationService interface {
	VerifyRole(ctx context.Context, apiKey string, want model.Role) error
	Submit(ctx context.Context, apiKey string, req *model.BookingNotification) (*SubmitResult, error)
	Resolve(ctx context.Context, apiKey string, decision *model.AdminDecision) (*ResolveResult, error)
	BookDirect(ctx context.Context, apiKey string, req *model.BookRoomRequest) (*model.Booking, error)
	Cancel(ctx context.Context, apiKey string, req *model.CancelRequest) error
}

// pendingSlot holds the single staged candidate awaiting an admin decision.
type pendingSlot struct {
	booking     *model.Booking
	submittedAt time.Time
}

type negotiationService struct {
	repo      repository.BookingRepository
	users     repository.UserRepository
	validator *validator.BookingValidator
	notifier  notify.Notifier
	cfg       *config.Config

	// mu guards the pending slot. Resolve holds it across the confirm
	// transaction so a concurrent Submit cannot replace the candidate
	// between the decision being read and the booking being persisted.
	mu      sync.Mutex
	pending *pendingSlot
}

func NewNegotiationService(
	repo repository.BookingRepository,
	users repository.UserRepository,
	validator *validator.BookingValidator,
	notifier notify.Notifier,
	cfg *config.Config,
) NegotiationService {
	return &negotiationService{
		repo:      repo,
		users:     users,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// VerifyRole resolves the presented API key and checks it grants the wanted
// role. Superadmins pass every admin check; an unknown key and a key with
// the wrong role are indistinguishable to the caller.
func (s *negotiationService) VerifyRole(ctx context.Context, apiKey string, want model.Role) error {
	if apiKey == "" {
		return apperrors.Unauthorized("Missing API key")
	}

	role, err := s.users.RoleByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrUserNotFound) {
			return apperrors.Unauthorized("Invalid API key")
		}
		return apperrors.Internal("Failed to verify credentials", err)
	}

	if role == want {
		return nil
	}
	if want == model.RoleAdmin && role == model.RoleSuperadmin {
		return nil
	}

	return apperrors.Unauthorized("Invalid API key")
}

func (s *negotiationService) Submit(ctx context.Context, apiKey string, req *model.BookingNotification) (*SubmitResult, error) {
	if err := s.VerifyRole(ctx, apiKey, model.RoleStudent); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateNotification(req); err != nil {
		s.cfg.Log.Warn("Booking notification validation failed", "error", err)
		return nil, apperrors.MalformedInput(err.Error())
	}

	booking, err := s.buildCandidate(req.RoomName, req.Date, req.StartTime, req.EndTime, req.GroupName, req.Activity, req.Capacity)
	if err != nil {
		return nil, err
	}

	available, err := s.repo.IsAvailable(ctx, booking.Room.Name, schedule.Window{Start: booking.Start, End: booking.End})
	if err != nil {
		return nil, apperrors.Internal("Failed to check room availability", err)
	}
	if !available {
		return nil, apperrors.SlotConflict(booking.Room.Name)
	}

	s.mu.Lock()
	if s.pending != nil {
		s.cfg.Log.Warn("Replacing staged booking candidate",
			"previous_room", s.pending.booking.Room.Name,
			"previous_group", s.pending.booking.GroupName,
			"room", booking.Room.Name,
			"group", booking.GroupName,
		)
	}
	s.pending = &pendingSlot{booking: booking, submittedAt: time.Now()}
	s.mu.Unlock()

	report := s.notifier.BookingSubmitted(ctx, booking)

	s.cfg.Log.Info("Booking candidate staged",
		"room", booking.Room.Name,
		"start", booking.Start,
		"end", booking.End,
		"group", booking.GroupName,
	)
	return &SubmitResult{Booking: booking, Delivery: report}, nil
}

func (s *negotiationService) Resolve(ctx context.Context, apiKey string, decision *model.AdminDecision) (*ResolveResult, error) {
	if err := s.VerifyRole(ctx, apiKey, model.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateDecision(decision); err != nil {
		s.cfg.Log.Warn("Admin decision validation failed", "error", err)
		return nil, apperrors.MalformedInput(err.Error())
	}

	booking, err := s.applyDecision(ctx, decision)
	if err != nil {
		return nil, err
	}

	// Fanout happens outside the slot mutex so Slack/Kafka latency cannot
	// block concurrent submissions.
	report := s.notifier.BookingResolved(ctx, booking, booking.Status)
	return &ResolveResult{Booking: booking, Delivery: report}, nil
}

// applyDecision resolves the staged candidate under the slot mutex. The
// mutex is held across the confirm transaction so a concurrent Submit
// cannot swap the candidate mid-decision.
func (s *negotiationService) applyDecision(ctx context.Context, decision *model.AdminDecision) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return nil, apperrors.NoPendingRequest()
	}
	if s.cfg.PendingTTL > 0 && time.Since(s.pending.submittedAt) > s.cfg.PendingTTL {
		s.cfg.Log.Info("Discarding expired booking candidate",
			"room", s.pending.booking.Room.Name,
			"submitted_at", s.pending.submittedAt,
		)
		s.pending = nil
		return nil, apperrors.NoPendingRequest()
	}

	booking := s.pending.booking

	if decision.Status == string(model.StatusRejected) {
		booking.Status = model.StatusRejected
		s.pending = nil
		s.cfg.Log.Info("Booking candidate rejected", "room", booking.Room.Name, "group", booking.GroupName)
		return booking, nil
	}

	if err := s.persistConfirmed(ctx, booking); err != nil {
		return nil, err
	}
	s.pending = nil

	s.cfg.Log.Info("Booking confirmed",
		"id", booking.ID,
		"room", booking.Room.Name,
		"start", booking.Start,
		"end", booking.End,
	)
	return booking, nil
}

func (s *negotiationService) BookDirect(ctx context.Context, apiKey string, req *model.BookRoomRequest) (*model.Booking, error) {
	if err := s.VerifyRole(ctx, apiKey, model.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateBookRoom(req); err != nil {
		s.cfg.Log.Warn("Direct booking validation failed", "error", err)
		return nil, apperrors.MalformedInput(err.Error())
	}

	// Direct bookings take the full room, so the requested capacity is the
	// room's maximum by definition.
	booking, err := s.buildCandidate(req.RoomName, req.Date, req.StartTime, req.EndTime, req.GroupName, req.Activity, 0)
	if err != nil {
		return nil, err
	}

	if err := s.persistConfirmed(ctx, booking); err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Room booked directly",
		"id", booking.ID,
		"room", booking.Room.Name,
		"start", booking.Start,
		"end", booking.End,
	)
	return booking, nil
}

func (s *negotiationService) Cancel(ctx context.Context, apiKey string, req *model.CancelRequest) error {
	if err := s.VerifyRole(ctx, apiKey, model.RoleAdmin); err != nil {
		return err
	}

	if err := s.validator.ValidateCancel(req); err != nil {
		s.cfg.Log.Warn("Cancel request validation failed", "error", err)
		return apperrors.MalformedInput(err.Error())
	}

	window, err := schedule.Parse(req.Date, req.Start, req.End)
	if err != nil {
		return apperrors.MalformedSchedule(err.Error())
	}

	info, ok := catalog.Lookup(req.RoomName)
	if !ok {
		return apperrors.UnknownRoom(req.RoomName)
	}

	if _, err := s.repo.FindExact(ctx, info.Name, window); err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return apperrors.NotFound("Booking")
		}
		return apperrors.Internal("Failed to look up booking", err)
	}

	deleted, err := s.repo.DeleteExact(ctx, info.Name, window)
	if err != nil {
		return apperrors.Internal("Failed to cancel booking", err)
	}
	if deleted == 0 {
		// Removed between lookup and delete.
		return apperrors.NotFound("Booking")
	}

	s.cfg.Log.Info("Booking cancelled",
		"room", info.Name,
		"start", window.Start,
		"end", window.End,
	)
	return nil
}

// buildCandidate resolves the wire payload into a pending booking: parsed
// window, canonical room record, validated activity and capacity. A
// requestedCapacity of 0 means "take the whole room".
func (s *negotiationService) buildCandidate(roomName, date, start, end, groupName, activity string, requestedCapacity int) (*model.Booking, error) {
	window, err := schedule.Parse(date, start, end)
	if err != nil {
		return nil, apperrors.MalformedSchedule(err.Error())
	}

	info, ok := catalog.Lookup(roomName)
	if !ok {
		return nil, apperrors.UnknownRoom(roomName)
	}

	act, err := model.ParseActivity(activity)
	if err != nil {
		return nil, apperrors.MalformedInput(err.Error())
	}

	capacity := requestedCapacity
	if capacity == 0 {
		capacity = info.MaxCapacity
	}
	if capacity > info.MaxCapacity {
		return nil, apperrors.CapacityExceeded(info.Name, capacity, info.MaxCapacity)
	}

	return &model.Booking{
		Room: model.Room{
			Name:     info.Name,
			Category: info.Category,
			Capacity: capacity,
		},
		Start:     window.Start,
		End:       window.End,
		GroupName: sanitizer.NormalizeGroupName(groupName),
		Activity:  act,
		Status:    model.StatusPending,
	}, nil
}

// persistConfirmed writes the booking as confirmed inside a transaction,
// re-checking availability against the durable store first. The unique slot
// index backs this up across processes: a lost race surfaces as a duplicate
// key and is mapped to the same conflict error.
func (s *negotiationService) persistConfirmed(ctx context.Context, booking *model.Booking) error {
	booking.Status = model.StatusConfirmed

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		available, err := s.repo.IsAvailable(sessCtx, booking.Room.Name, schedule.Window{Start: booking.Start, End: booking.End})
		if err != nil {
			return apperrors.Internal("Failed to re-check room availability", err)
		}
		if !available {
			return apperrors.SlotConflict(booking.Room.Name)
		}

		if err := s.repo.Insert(sessCtx, booking); err != nil {
			if errors.Is(err, bookingerrors.ErrDuplicateSlot) {
				return apperrors.SlotConflict(booking.Room.Name)
			}
			return apperrors.Internal("Failed to persist booking", err)
		}
		return nil
	})
	if err != nil {
		booking.Status = model.StatusPending
		s.cfg.Log.Error("Failed to confirm booking", "room", booking.Room.Name, "error", err)
		return err
	}

	return nil
}
