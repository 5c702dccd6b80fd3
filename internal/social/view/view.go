// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view is the view ledger: it records that a viewer watched a video
within a viewing session, at most once per (video, viewer, session).

# Core Responsibility

  - Idempotency: A repeat of the same (video, viewer, session) is a normal
    "not counted" outcome, never an error. Anonymous viewers deduplicate per
    session as well.
  - Counter: The video's view counter moves only when a new record is
    created, in the same transaction as the insert.
  - Repair: [Service.Reconcile] and the background [Reconciler] reset
    counters to the number of stored records.
  - Fast path: An optional [SeenCache] answers repeats without touching
    PostgreSQL. It is written only after the ledger answered, and any cache
    failure falls back to the database path.
*/
package view

// Key identifies one view. ViewerID is "" for anonymous viewers.
type Key struct {
	VideoID   string
	ViewerID  string
	SessionID string
}

// Result reports the outcome of [Service.RecordView].
type Result struct {
	Counted bool `json:"counted"`
}

// ReconcileResult reports the outcome of a recount pass.
type ReconcileResult struct {
	// VideoID is set for single-video passes.
	VideoID   string `json:"video_id,omitempty"`
	ViewCount int64  `json:"view_count,omitempty"`
	// Repaired is the number of counters that were out of sync.
	Repaired int64 `json:"repaired"`
}
