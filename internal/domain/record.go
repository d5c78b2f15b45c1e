package domain

import (
	"time"

	"vdcode/internal/shortcode"
)

// CodeRecord is an issued code together with its bookkeeping.
type CodeRecord struct {
	Code         shortcode.Code
	Label        string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LookupCount  int64
	LastLookupAt time.Time
}

// IsExpired returns true if the record has expired at the given time.
func (r *CodeRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Clone returns a copy of the record. Code is immutable and safe to share.
func (r *CodeRecord) Clone() *CodeRecord {
	c := *r
	return &c
}
