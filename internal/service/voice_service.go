package service

import (
	"context"
	"strings"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/internal/repository/memory"
	"talk-to-legends-be/internal/repository/specification"
	"talk-to-legends-be/internal/repository/unitofwork"
	"talk-to-legends-be/pkg/persona"
	"talk-to-legends-be/pkg/plan"
	"talk-to-legends-be/pkg/speech"

	"github.com/google/uuid"
)

const voiceUnavailableMessage = "Voice generation temporarily unavailable"

type IVoiceService interface {
	Synthesize(ctx context.Context, userId uuid.UUID, req *dto.VoiceRequest) ([]byte, error)
}

type voiceService struct {
	uowFactory  unitofwork.RepositoryFactory
	registry    *persona.Registry
	synthesizer speech.Synthesizer
	cache       *memory.AudioCacheRepository
	logger      logger.ILogger
}

// NewVoiceService accepts a nil synthesizer. Every request then fails as unavailable.
func NewVoiceService(
	uowFactory unitofwork.RepositoryFactory,
	registry *persona.Registry,
	synthesizer speech.Synthesizer,
	cache *memory.AudioCacheRepository,
	log logger.ILogger,
) IVoiceService {
	return &voiceService{
		uowFactory:  uowFactory,
		registry:    registry,
		synthesizer: synthesizer,
		cache:       cache,
		logger:      log,
	}
}

func (s *voiceService) Synthesize(ctx context.Context, userId uuid.UUID, req *dto.VoiceRequest) ([]byte, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	if !plan.For(user.Plan).Voice {
		return nil, apperror.Forbidden("Voice generation requires Pro plan", true)
	}

	legend := strings.TrimSpace(req.Legend)
	if legend == "" || strings.TrimSpace(req.Text) == "" {
		return nil, apperror.Validation("Legend and text are required")
	}
	p, ok := s.registry.Lookup(legend)
	if !ok {
		return nil, apperror.Validation("Unknown legend")
	}

	text := speech.Sanitize(req.Text)
	key := memory.AudioKey(p.Id, p.Voice.VoiceId, text)
	if s.cache != nil {
		if audio, found := s.cache.Get(key); found {
			return audio, nil
		}
	}

	if s.synthesizer == nil {
		return nil, apperror.UpstreamUnavailable(voiceUnavailableMessage, speech.ErrNotConfigured)
	}
	audio, err := s.synthesizer.Synthesize(ctx, text, p.Voice)
	if err != nil {
		s.logger.Warn("VOICE", "Speech synthesis failed", map[string]interface{}{
			"legend": p.Id,
			"error":  err.Error(),
		})
		return nil, apperror.UpstreamUnavailable(voiceUnavailableMessage, err)
	}

	if s.cache != nil {
		s.cache.Save(key, audio)
	}
	return audio, nil
}
