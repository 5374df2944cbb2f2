package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/pkg/ctxutil"
)

const (
	kindText  = "text"
	kindVoice = "voice"
)

// turnState is threaded through the pipeline stages of one turn.
type turnState struct {
	kind     string
	input    TurnInput
	language domain.Language
	lesson   domain.Lesson
	opening  bool
	userText string
}

// Turn processes one text conversation turn.
func (s *Service) Turn(ctx context.Context, input TurnInput) (*domain.TurnOutcome, error) {
	start := time.Now()

	out, err := s.turn(ctx, input)
	s.metrics.RecordTurn(ctx, kindText, outcomeOf(err), time.Since(start))
	return out, err
}

func (s *Service) turn(ctx context.Context, input TurnInput) (*domain.TurnOutcome, error) {
	if err := input.Validate(); err != nil {
		return nil, fail(StageValidating, err)
	}

	st, err := s.validate(ctx, kindText, input)
	if err != nil {
		return nil, err
	}
	st.opening = domain.IsOpeningTurn(input.History)

	return s.run(ctx, st)
}

// VoiceTurn transcribes the learner's recording, appends it to the history
// and runs the same pipeline as a text turn.
func (s *Service) VoiceTurn(ctx context.Context, input VoiceTurnInput) (*domain.TurnOutcome, error) {
	start := time.Now()

	out, err := s.voiceTurn(ctx, input)
	s.metrics.RecordTurn(ctx, kindVoice, outcomeOf(err), time.Since(start))
	return out, err
}

func (s *Service) voiceTurn(ctx context.Context, input VoiceTurnInput) (*domain.TurnOutcome, error) {
	if err := input.Validate(); err != nil {
		return nil, fail(StageValidating, err)
	}

	st, err := s.validate(ctx, kindVoice, input.TurnInput)
	if err != nil {
		return nil, err
	}

	s.stage(ctx, StageTranscribing)
	lang := st.language.LocalePrefix()
	if lang == "" {
		lang = "en"
	}

	began := time.Now()
	text, err := s.stt.Transcribe(ctx, input.Audio, lang)
	if err != nil {
		s.metrics.RecordUpstream(ctx, "stt", "error", time.Since(began))
		s.log.ErrorContext(ctx, "transcription failed", slog.String("error", err.Error()))
		return nil, fail(StageTranscribing, fmt.Errorf("%w: transcribe: %w", domain.ErrUpstream, err))
	}
	s.metrics.RecordUpstream(ctx, "stt", "ok", time.Since(began))

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fail(StageTranscribing, domain.NewValidationError("audio", "no speech recognized"))
	}

	history := make([]domain.ChatMessage, 0, len(st.input.History)+1)
	for _, m := range st.input.History {
		if m.Text == domain.TurnStartSentinel {
			continue
		}
		history = append(history, m)
	}
	st.input.History = append(history, domain.ChatMessage{Role: domain.RoleLearner, Text: text})
	st.userText = text

	out, err := s.run(ctx, st)
	if err != nil {
		return nil, err
	}
	out.UserText = text
	return out, nil
}

// validate checks the session and resolves the lesson. Nothing is written
// before it succeeds.
func (s *Service) validate(ctx context.Context, kind string, input TurnInput) (*turnState, error) {
	s.stage(ctx, StageValidating)

	sess, err := s.sessions.ResolveSession(ctx, input.SessionToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return nil, fail(StageValidating, domain.ErrUnauthorized)
		}
		return nil, fail(StageValidating, fmt.Errorf("resolve session: %w", err))
	}
	if sess.Expired(s.now()) || !sess.BelongsTo(input.LearnerID) {
		s.log.WarnContext(ctx, "session rejected",
			slog.String("learner_id", input.LearnerID.String()),
			slog.Bool("expired", sess.Expired(s.now())),
		)
		return nil, fail(StageValidating, domain.ErrUnauthorized)
	}

	lang, err := s.catalog.Language(input.LanguageID)
	if err != nil {
		return nil, fail(StageValidating, fmt.Errorf("language %q: %w", input.LanguageID, err))
	}
	lesson, err := s.catalog.GetLesson(input.LanguageID, domain.LevelBeginner, input.LessonID)
	if err != nil {
		return nil, fail(StageValidating, fmt.Errorf("lesson %d: %w", input.LessonID, err))
	}

	return &turnState{kind: kind, input: input, language: lang, lesson: lesson}, nil
}

// run executes Requesting through Responding.
func (s *Service) run(ctx context.Context, st *turnState) (*domain.TurnOutcome, error) {
	s.stage(ctx, StageRequesting)
	voice := st.kind == kindVoice

	instruction, err := s.prompts.Build(st.language, st.lesson, st.opening, voice)
	if err != nil {
		return nil, fail(StageRequesting, err)
	}

	req := domain.ModelRequest{
		Instruction: instruction,
		History:     st.input.History,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	}
	if st.opening {
		req.History = nil
	}
	if voice {
		req.Temperature = s.cfg.VoiceTemperature
		req.MaxTokens = s.cfg.VoiceMaxTokens
	}

	began := time.Now()
	raw, err := s.model.Complete(ctx, req)
	if err != nil {
		s.metrics.RecordUpstream(ctx, "chat", "error", time.Since(began))
		s.log.ErrorContext(ctx, "model call failed", slog.String("error", err.Error()))
		return nil, fail(StageRequesting, fmt.Errorf("%w: complete: %w", domain.ErrUpstream, err))
	}
	s.metrics.RecordUpstream(ctx, "chat", "ok", time.Since(began))

	s.stage(ctx, StageParsing)
	resp, parseStage := Parse(raw)
	s.metrics.RecordParse(ctx, parseStage.String())
	if parseStage == ParseDegraded {
		s.log.WarnContext(ctx, "model reply was not structured", slog.Int("length", len(raw)))
	}

	s.stage(ctx, StageExtracting)
	extraction := s.extractor.Extract(resp.NewWords, resp.ConversationMessage)
	reasons := make([]string, len(extraction.Rejected))
	for i, r := range extraction.Rejected {
		reasons[i] = string(r.Reason)
	}
	s.metrics.RecordVocab(ctx, len(extraction.Admitted), reasons)

	s.stage(ctx, StagePersisting)
	s.persist(ctx, st, extraction.Admitted)

	s.stage(ctx, StageResponding)
	if resp.LessonComplete {
		s.completeLesson(ctx, st)
	}

	return &domain.TurnOutcome{
		ConversationMessage: resp.ConversationMessage,
		SystemMessage:       resp.SystemMessage,
		LessonComplete:      resp.LessonComplete,
		Corrections:         resp.Corrections,
		NewWords:            s.suppressMastered(ctx, st, extraction.Admitted),
	}, nil
}

// persist records tutor sightings and the learner's own words. Failures are
// logged and never abort the turn.
func (s *Service) persist(ctx context.Context, st *turnState, admitted []domain.VocabularyCandidate) {
	learner := st.input.LearnerID

	for _, c := range admitted {
		_, err := s.words.RecordSeen(ctx, domain.WordSighting{
			UserID:      learner,
			LanguageID:  st.input.LanguageID,
			Word:        c.Word,
			Translation: c.TranslationText(),
			Romaji:      c.Romaji,
		})
		if err != nil {
			s.log.WarnContext(ctx, "record seen word failed",
				slog.String("word", c.Word),
				slog.String("error", err.Error()),
			)
		}
	}

	if st.opening {
		return
	}
	text, ok := domain.LatestLearnerText(st.input.History)
	if !ok {
		return
	}
	if _, err := s.words.RecordUsed(ctx, learner, st.input.LanguageID, text); err != nil {
		s.log.WarnContext(ctx, "record used words partially failed", slog.String("error", err.Error()))
	}
}

// suppressMastered drops words the learner has already produced.
func (s *Service) suppressMastered(ctx context.Context, st *turnState, admitted []domain.VocabularyCandidate) []domain.VocabularyCandidate {
	if len(admitted) == 0 {
		return admitted
	}

	keys := make([]string, len(admitted))
	for i, c := range admitted {
		keys[i] = domain.NormalizeWord(c.Word)
	}

	known, err := s.words.Lookup(ctx, st.input.LearnerID, st.input.LanguageID, keys)
	if err != nil {
		s.log.WarnContext(ctx, "word bank lookup failed", slog.String("error", err.Error()))
		return admitted
	}

	out := make([]domain.VocabularyCandidate, 0, len(admitted))
	for i, c := range admitted {
		if rec, ok := known[keys[i]]; ok && rec.Mastered() {
			continue
		}
		out = append(out, c)
	}
	return out
}

// completeLesson records completion in the background so the learner's reply
// never waits on it.
func (s *Service) completeLesson(ctx context.Context, st *turnState) {
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.SideEffectTimeout)
	learner, language, lesson := st.input.LearnerID, st.input.LanguageID, st.lesson.ID

	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		defer cancel()

		if err := s.progress.UpsertCompletion(bgCtx, learner, language, lesson); err != nil {
			s.log.ErrorContext(bgCtx, "record lesson completion failed",
				slog.String("learner_id", learner.String()),
				slog.Int("lesson_id", lesson),
				slog.String("error", err.Error()),
			)
			return
		}
		s.log.InfoContext(bgCtx, "lesson completed",
			slog.String("learner_id", learner.String()),
			slog.String("language_id", language),
			slog.Int("lesson_id", lesson),
		)
	}()
}

func (s *Service) stage(ctx context.Context, stage Stage) {
	s.log.DebugContext(ctx, "turn stage",
		slog.String("stage", string(stage)),
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
	)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}
