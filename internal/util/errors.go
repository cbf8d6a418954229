package util

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailRegistered = errors.New("email already registered")
	ErrUnauthorized    = errors.New("unauthorized")

	ErrSubjectNotFound  = errors.New("subject not found")
	ErrSkillNotFound    = errors.New("skill not found")
	ErrModuleNotFound   = errors.New("module not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrQuizNotFound     = errors.New("no quiz found for lesson")
	ErrSlugTaken        = errors.New("slug already exists")

	// Quiz generation and grading failures, mapped to 503/400 by controllers.
	ErrQuizServiceNotConfigured = errors.New("quiz generation service is not configured")
	ErrQuizServiceUnavailable   = errors.New("quiz generation service unavailable")
	ErrInvalidQuizPayload       = errors.New("model returned an invalid quiz payload")
	ErrAnswersLengthMismatch    = errors.New("answers length must equal number of questions")
	ErrScoreOutOfRange          = errors.New("score must be between 0 and 100")
)
