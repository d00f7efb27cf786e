package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/repository"
)

// ModerationService handles the staff-only moderation surface: approving
// content, issuing warnings and bans, and working the complaint queue.
type ModerationService struct {
	moderationRepo *repository.ModerationRepository
	taskRepo       *repository.TaskRepository
	serviceRepo    *repository.ServiceRepository
	vacancyRepo    *repository.VacancyRepository
	userRepo       *repository.UserRepository
}

// NewModerationService creates a new ModerationService.
func NewModerationService(
	moderationRepo *repository.ModerationRepository,
	taskRepo *repository.TaskRepository,
	serviceRepo *repository.ServiceRepository,
	vacancyRepo *repository.VacancyRepository,
	userRepo *repository.UserRepository,
) *ModerationService {
	return &ModerationService{
		moderationRepo: moderationRepo,
		taskRepo:       taskRepo,
		serviceRepo:    serviceRepo,
		vacancyRepo:    vacancyRepo,
		userRepo:       userRepo,
	}
}

func requireStaff(actor domain.Actor) error {
	if !actor.IsStaff {
		return fmt.Errorf("%w: staff only", domain.ErrPermissionDenied)
	}
	return nil
}

// ListPendingTasks retrieves the tasks waiting for moderation.
func (s *ModerationService) ListPendingTasks(ctx context.Context, actor domain.Actor) ([]*domain.Task, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.taskRepo.ListPendingModeration(ctx)
}

// ModerateTask approves or rejects a task.
func (s *ModerationService) ModerateTask(ctx context.Context, actor domain.Actor, taskID string, approve bool, comment string) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if !approve && comment == "" {
		return fmt.Errorf("%w: a rejection needs a comment", domain.ErrValidation)
	}

	if err := s.taskRepo.SetModeration(ctx, taskID, approve, comment); err != nil {
		return err
	}

	slog.Info("task moderated",
		"task_id", taskID,
		"moderator_id", actor.ID,
		"approved", approve,
	)
	return nil
}

// ModerateService approves or rejects a service offering.
func (s *ModerationService) ModerateService(ctx context.Context, actor domain.Actor, serviceID string, approve bool, comment string) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if !approve && comment == "" {
		return fmt.Errorf("%w: a rejection needs a comment", domain.ErrValidation)
	}

	if err := s.serviceRepo.SetModeration(ctx, serviceID, approve, comment); err != nil {
		return err
	}

	slog.Info("service moderated",
		"service_id", serviceID,
		"moderator_id", actor.ID,
		"approved", approve,
	)
	return nil
}

// ModerateVacancy approves or rejects a vacancy.
func (s *ModerationService) ModerateVacancy(ctx context.Context, actor domain.Actor, vacancyID string, approve bool, comment string) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if !approve && comment == "" {
		return fmt.Errorf("%w: a rejection needs a comment", domain.ErrValidation)
	}

	if err := s.vacancyRepo.SetModeration(ctx, vacancyID, approve, comment); err != nil {
		return err
	}

	slog.Info("vacancy moderated",
		"vacancy_id", vacancyID,
		"moderator_id", actor.ID,
		"approved", approve,
	)
	return nil
}

// WarnUser issues a disciplinary warning.
func (s *ModerationService) WarnUser(ctx context.Context, actor domain.Actor, userID, reason string) (*domain.UserWarning, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: a warning needs a reason", domain.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	warning := &domain.UserWarning{
		UserID:     userID,
		IssuedByID: actor.ID,
		Reason:     reason,
	}
	warning, err := s.moderationRepo.CreateWarning(ctx, warning)
	if err != nil {
		return nil, err
	}

	slog.Info("user warned",
		"user_id", userID,
		"moderator_id", actor.ID,
	)
	return warning, nil
}

// BanUser blocks a user. until is nil for a permanent ban.
func (s *ModerationService) BanUser(ctx context.Context, actor domain.Actor, userID, reason string, until *time.Time) (*domain.UserBan, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: a ban needs a reason", domain.ErrValidation)
	}
	if until != nil && !until.After(time.Now()) {
		return nil, fmt.Errorf("%w: ban end must be in the future", domain.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ban := &domain.UserBan{
		UserID:      userID,
		IssuedByID:  actor.ID,
		Reason:      reason,
		IsPermanent: until == nil,
		BannedUntil: until,
	}
	ban, err := s.moderationRepo.CreateBan(ctx, ban)
	if err != nil {
		return nil, err
	}

	slog.Info("user banned",
		"user_id", userID,
		"moderator_id", actor.ID,
		"permanent", ban.IsPermanent,
	)
	return ban, nil
}

// UnbanUser lifts the active ban of a user.
func (s *ModerationService) UnbanUser(ctx context.Context, actor domain.Actor, userID string) error {
	if err := requireStaff(actor); err != nil {
		return err
	}

	ban, err := s.moderationRepo.GetActiveBan(ctx, userID, time.Now())
	if err != nil {
		return err
	}
	if err := s.moderationRepo.RevokeBan(ctx, ban.ID); err != nil {
		return err
	}

	slog.Info("user unbanned",
		"user_id", userID,
		"moderator_id", actor.ID,
	)
	return nil
}

// FileComplaint lets any user report another user.
func (s *ModerationService) FileComplaint(ctx context.Context, actor domain.Actor, accusedID, reason string) (*domain.UserComplaint, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: a complaint needs a reason", domain.ErrValidation)
	}
	if accusedID == actor.ID {
		return nil, fmt.Errorf("%w: cannot complain about yourself", domain.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(ctx, accusedID); err != nil {
		return nil, err
	}

	complaint := &domain.UserComplaint{
		ComplainantID: actor.ID,
		AccusedID:     accusedID,
		Reason:        reason,
	}
	complaint, err := s.moderationRepo.CreateComplaint(ctx, complaint)
	if err != nil {
		return nil, err
	}

	slog.Info("complaint filed",
		"complaint_id", complaint.ID,
		"complainant_id", actor.ID,
		"accused_id", accusedID,
	)
	return complaint, nil
}

// ListComplaints retrieves the complaint queue. Staff only.
func (s *ModerationService) ListComplaints(ctx context.Context, actor domain.Actor, status *domain.ComplaintStatus) ([]*domain.UserComplaint, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown complaint status %q", domain.ErrValidation, *status)
	}
	return s.moderationRepo.ListComplaints(ctx, status)
}

// ResolveComplaint records the staff decision on an open complaint.
func (s *ModerationService) ResolveComplaint(ctx context.Context, actor domain.Actor, complaintID string, status domain.ComplaintStatus, note string) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if status != domain.ComplaintStatusReviewed && status != domain.ComplaintStatusDismissed {
		return fmt.Errorf("%w: complaint can only be reviewed or dismissed", domain.ErrValidation)
	}

	complaint, err := s.moderationRepo.GetComplaint(ctx, complaintID)
	if err != nil {
		return err
	}
	if complaint.Status != domain.ComplaintStatusOpen {
		return fmt.Errorf("%w: complaint %s is already %s", domain.ErrValidation, complaintID, complaint.Status)
	}

	if err := s.moderationRepo.ResolveComplaint(ctx, complaintID, status, note); err != nil {
		return err
	}

	slog.Info("complaint resolved",
		"complaint_id", complaintID,
		"moderator_id", actor.ID,
		"status", status,
	)
	return nil
}

// ActiveBan returns the ban in force for a user, or ErrBanNotFound.
func (s *ModerationService) ActiveBan(ctx context.Context, userID string) (*domain.UserBan, error) {
	return s.moderationRepo.GetActiveBan(ctx, userID, time.Now())
}

// ListWarnings retrieves the warnings on a user's record.
func (s *ModerationService) ListWarnings(ctx context.Context, actor domain.Actor, userID string) ([]*domain.UserWarning, error) {
	if !actor.IsStaff && actor.ID != userID {
		return nil, fmt.Errorf("%w: warnings are private", domain.ErrPermissionDenied)
	}
	return s.moderationRepo.ListWarnings(ctx, userID)
}
