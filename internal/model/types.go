// Package model defines shared data structures.
package model

import "time"

// Config defines typing test settings.
type Config struct {
	WordListPath  string
	HighScorePath string
	SampleSize    int
	Duration      time.Duration
	MinLen        int
	MaxLen        int
	History       bool
}

// StatsConfig defines filters for session history.
type StatsConfig struct {
	Since *time.Time
	Last  int
}

// SessionStats captures a completed typing session.
type SessionStats struct {
	ID            string
	StartedAt     time.Time
	EndedAt       time.Time
	DurationMs    int64
	SampleSize    int
	WordListPath  string
	Submitted     int
	CorrectWords  int
	CPM           int
	WPM           int
	NewHighScore  bool
	PrevHighScore int
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	Seq          int64
	ID           string
	EndedAt      time.Time
	DurationMs   int64
	Submitted    int
	CorrectWords int
	CPM          int
	WPM          int
	NewHighScore bool
}

// WordEntry records one submitted word of a session.
type WordEntry struct {
	Position int
	Expected string
	Entered  string
	Correct  bool
}
