package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/repository"
)

// MessageService handles the per-response negotiation threads and the
// direct messages attached to services.
type MessageService struct {
	messageRepo  *repository.MessageRepository
	responseRepo *repository.ResponseRepository
	taskRepo     *repository.TaskRepository
	serviceRepo  *repository.ServiceRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(
	messageRepo *repository.MessageRepository,
	responseRepo *repository.ResponseRepository,
	taskRepo *repository.TaskRepository,
	serviceRepo *repository.ServiceRepository,
) *MessageService {
	return &MessageService{
		messageRepo:  messageRepo,
		responseRepo: responseRepo,
		taskRepo:     taskRepo,
		serviceRepo:  serviceRepo,
	}
}

// threadMembers resolves the two parties of a response thread: the task
// author and the candidate.
func (s *MessageService) threadMembers(ctx context.Context, responseID string) (authorID, candidateID string, err error) {
	resp, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return "", "", err
	}
	task, err := s.taskRepo.GetByID(ctx, resp.TaskID)
	if err != nil {
		return "", "", err
	}
	return task.AuthorID, resp.CandidateID, nil
}

func (s *MessageService) checkThreadMember(ctx context.Context, responseID string, actor domain.Actor) error {
	authorID, candidateID, err := s.threadMembers(ctx, responseID)
	if err != nil {
		return err
	}
	if actor.ID != authorID && actor.ID != candidateID && !actor.IsStaff {
		return fmt.Errorf("%w: user %s, response %s", domain.ErrNotThreadMember, actor.ID, responseID)
	}
	return nil
}

// SendThreadMessage appends a message to a response thread. Only the task
// author and the candidate may write.
func (s *MessageService) SendThreadMessage(ctx context.Context, actor domain.Actor, responseID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}
	if err := s.checkThreadMember(ctx, responseID, actor); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ResponseID: responseID,
		SenderID:   actor.ID,
		Content:    content,
	}
	msg, err := s.messageRepo.CreateThreadMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	slog.Info("thread message sent",
		"message_id", msg.ID,
		"response_id", responseID,
		"sender_id", actor.ID,
	)

	return msg, nil
}

// GetThread retrieves the messages of a response thread and marks the
// actor's incoming messages as read.
func (s *MessageService) GetThread(ctx context.Context, actor domain.Actor, responseID string) ([]*domain.Message, error) {
	if err := s.checkThreadMember(ctx, responseID, actor); err != nil {
		return nil, err
	}

	msgs, err := s.messageRepo.ListThread(ctx, responseID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkThreadRead(ctx, responseID, actor.ID); err != nil {
		return nil, err
	}

	return msgs, nil
}

// SendServiceMessage starts or continues a conversation about a service.
// A customer writes to the author; the author replies to the customer.
func (s *MessageService) SendServiceMessage(ctx context.Context, actor domain.Actor, serviceID, recipientID, content string) (*domain.ServiceMessage, error) {
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}
	if recipientID == actor.ID {
		return nil, domain.ErrSelfMessage
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	// One side of the conversation must be the service author.
	if actor.ID != svc.AuthorID && recipientID != svc.AuthorID {
		return nil, fmt.Errorf("%w: service %s", domain.ErrNotThreadMember, serviceID)
	}

	msg := &domain.ServiceMessage{
		ServiceID:   serviceID,
		SenderID:    actor.ID,
		RecipientID: recipientID,
		Content:     content,
	}
	msg, err = s.messageRepo.CreateServiceMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	slog.Info("service message sent",
		"message_id", msg.ID,
		"service_id", serviceID,
		"sender_id", actor.ID,
	)

	return msg, nil
}

// GetServiceThread retrieves the conversation between the actor and the
// other party about a service.
func (s *MessageService) GetServiceThread(ctx context.Context, actor domain.Actor, serviceID, otherID string) ([]*domain.ServiceMessage, error) {
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListServiceThread(ctx, serviceID, actor.ID, otherID)
}

// MarkServiceMessageRead flags an incoming service message as read.
func (s *MessageService) MarkServiceMessageRead(ctx context.Context, actor domain.Actor, messageID string) error {
	return s.messageRepo.MarkServiceMessageRead(ctx, messageID, actor.ID)
}
