package dto

import "kiezjagd_backend/internals/features/play/rankings/scoring"

// TopListResponse is keyed by game id; games without results map to [].
type TopListResponse map[string][]scoring.Ranked
