package quiz

import "errors"

var (
	// ErrEmptyPool is returned by Start when no records match the quiz
	// configuration.
	ErrEmptyPool = errors.New("no questions available for this selection, widen your filters")

	// ErrInvalidCount is returned by Start when fewer than one question is
	// requested.
	ErrInvalidCount = errors.New("question count must be at least 1")

	// ErrSessionFinished is returned when a question is requested or
	// answered after the last question.
	ErrSessionFinished = errors.New("quiz session already finished")

	// ErrSessionNotFinished is returned when a report is requested before
	// the last question was answered.
	ErrSessionNotFinished = errors.New("quiz session not finished")
)
