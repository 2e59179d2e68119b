package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/lib/logger/sl"
	"recipe_journal/internal/lib/sanitize"
	"recipe_journal/internal/repository"
	"recipe_journal/internal/transport/http/dto"
)

var ErrEmptyMessage = errors.New("message is empty")

type ContactService struct {
	log     *slog.Logger
	repo    repository.ContactRepository
	timeout time.Duration
}

func NewContactService(log *slog.Logger, repo repository.ContactRepository, timeout time.Duration) *ContactService {
	return &ContactService{
		log:     log,
		repo:    repo,
		timeout: timeout,
	}
}

// Submit сохраняет сообщение с формы обратной связи, HTML из полей вырезается
func (s *ContactService) Submit(ctx context.Context, req dto.ContactRequest, remoteIP string) (string, error) {
	const op = "contact_service.Submit"

	log := s.log.With(
		slog.String("op", op),
		slog.String("remote_ip", remoteIP),
	)

	msg := models.ContactMessage{
		Name:     sanitize.StripHTML(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Subject:  sanitize.StripHTML(req.Subject),
		Message:  sanitize.StripHTML(req.Message),
		RemoteIP: remoteIP,
	}

	if msg.Message == "" || msg.Name == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyMessage)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	id, err := s.repo.SaveMessage(ctx, msg)
	if err != nil {
		log.Error("failed to save contact message", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, &models.PersistenceError{Op: "insert", Collection: "contact_messages", Err: err})
	}

	log.Info("contact message saved", slog.String("id", id))

	return id, nil
}
