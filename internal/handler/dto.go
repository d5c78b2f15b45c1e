package handler

// === Requests ===

type IssueRequest struct {
	Label             string `json:"label"`
	TTLSeconds        *int64 `json:"ttl_seconds,omitempty"`
	Length            *int   `json:"length,omitempty"`
	NoRepeats         *bool  `json:"no_repeats,omitempty"`
	NoAdjacentRepeats *bool  `json:"no_adjacent_repeats,omitempty"`
}

type ValidateRequest struct {
	Code      string `json:"code"`
	Normalize bool   `json:"normalize,omitempty"`
}

// === Responses ===

type IssueResponse struct {
	Code      string `json:"code"`
	Grouped   string `json:"grouped"`
	Label     string `json:"label"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
	QRURL     string `json:"qr_url"`
}

type LookupResponse struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	ExpiresAt string `json:"expires_at"`
}

type StatsResponse struct {
	Code         string  `json:"code"`
	Label        string  `json:"label"`
	CreatedAt    string  `json:"created_at"`
	ExpiresAt    string  `json:"expires_at"`
	LookupCount  int64   `json:"lookup_count"`
	LastLookupAt *string `json:"last_lookup_at"`
}

type ValidateResponse struct {
	Valid     bool   `json:"valid"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
	Character string `json:"character,omitempty"`
	Position  *int   `json:"position,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
