// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import "context"

// # View Data Access

// Repository defines the data access contract for the view ledger.
type Repository interface {

	/*
		Record inserts the view if absent and, only then, increments the
		video's counter. Both happen in one transaction.

		Returns:
		  - bool: true if a new record was created
		  - error: Storage failures (a duplicate is not an error)
	*/
	Record(context context.Context, key Key) (bool, error)

	/*
		Reconcile sets one video's counter to its number of view records.

		Returns:
		  - int64: The corrected counter
		  - bool: true if the counter changed
		  - error: NOT_FOUND if the video does not exist
	*/
	Reconcile(context context.Context, videoID string) (int64, bool, error)

	/*
		ReconcileAll corrects every drifted counter.

		Returns:
		  - int64: Number of counters changed
	*/
	ReconcileAll(context context.Context) (int64, error)
}

// SeenCache remembers recently recorded views.
type SeenCache interface {
	Seen(context context.Context, key Key) (bool, error)
	Remember(context context.Context, key Key) error
}
