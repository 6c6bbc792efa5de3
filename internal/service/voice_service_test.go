package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/internal/repository/memory"
	"talk-to-legends-be/pkg/persona"
	"talk-to-legends-be/pkg/plan"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynthesizer struct {
	audio []byte
	err   error
	calls int
	text  string
	voice persona.VoiceProfile
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string, voice persona.VoiceProfile) ([]byte, error) {
	f.calls++
	f.text = text
	f.voice = voice
	return f.audio, f.err
}

func TestVoiceSynthesizeAndCache(t *testing.T) {
	factory, _ := newTestFactory(t)
	synth := &fakeSynthesizer{audio: []byte("ID3-audio")}
	svc := NewVoiceService(factory, persona.NewDefaultRegistry(), synth, memory.NewAudioCacheRepository(time.Hour), nopLogger)
	user := seedUser(t, factory, plan.Pro)
	ctx := context.Background()

	req := &dto.VoiceRequest{Legend: "einstein", Text: "**Imagination**\nis everything."}
	audio, err := svc.Synthesize(ctx, user.Id, req)
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-audio"), audio)
	assert.Equal(t, "Imagination. is everything.", synth.text)

	einstein, _ := persona.NewDefaultRegistry().Lookup("einstein")
	assert.Equal(t, einstein.Voice, synth.voice)

	again, err := svc.Synthesize(ctx, user.Id, req)
	require.NoError(t, err)
	assert.Equal(t, audio, again)
	assert.Equal(t, 1, synth.calls)
}

func TestVoiceGuards(t *testing.T) {
	factory, _ := newTestFactory(t)
	synth := &fakeSynthesizer{audio: []byte("a")}
	svc := NewVoiceService(factory, persona.NewDefaultRegistry(), synth, memory.NewAudioCacheRepository(time.Hour), nopLogger)
	free := seedUser(t, factory, plan.Free)
	pro := seedUser(t, factory, plan.Premium)
	ctx := context.Background()

	_, err := svc.Synthesize(ctx, uuid.New(), &dto.VoiceRequest{Legend: "gandhi", Text: "hi"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	// Plan is checked before the body.
	_, err = svc.Synthesize(ctx, free.Id, &dto.VoiceRequest{})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	assert.Equal(t, "Voice generation requires Pro plan", appErr.Message)
	assert.True(t, appErr.Upgrade)

	_, err = svc.Synthesize(ctx, pro.Id, &dto.VoiceRequest{Legend: "gandhi"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Synthesize(ctx, pro.Id, &dto.VoiceRequest{Legend: "napoleon", Text: "hi"})
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "Unknown legend", appErr.Message)

	assert.Zero(t, synth.calls)
}

func TestVoiceUpstreamFailure(t *testing.T) {
	factory, _ := newTestFactory(t)
	user := seedUser(t, factory, plan.Pro)
	ctx := context.Background()

	failing := NewVoiceService(factory, persona.NewDefaultRegistry(), &fakeSynthesizer{err: errors.New("boom")}, memory.NewAudioCacheRepository(time.Hour), nopLogger)
	_, err := failing.Synthesize(ctx, user.Id, &dto.VoiceRequest{Legend: "gandhi", Text: "Truth"})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindUpstreamUnavailable, appErr.Kind)
	assert.Equal(t, "Voice generation temporarily unavailable", appErr.Message)
	assert.True(t, appErr.Fallback)

	unconfigured := NewVoiceService(factory, persona.NewDefaultRegistry(), nil, nil, nopLogger)
	_, err = unconfigured.Synthesize(ctx, user.Id, &dto.VoiceRequest{Legend: "gandhi", Text: "Truth"})
	assert.True(t, apperror.Is(err, apperror.KindUpstreamUnavailable))
}
