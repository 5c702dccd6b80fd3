// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import "context"

// # Like Data Access

// Repository defines the data access contract for likes.
type Repository interface {

	/*
		Exists reports whether the like identified by key is stored.
	*/
	Exists(context context.Context, key Key) (bool, error)

	/*
		Insert stores a new like.

		Returns:
		  - *Record: The stored like
		  - error: apperr CONFLICT if the key already exists
	*/
	Insert(context context.Context, key Key) (*Record, error)

	/*
		Delete removes the like identified by key.

		Returns:
		  - bool: true if a row was removed
		  - error: Storage failures
	*/
	Delete(context context.Context, key Key) (bool, error)

	/*
		CountFor returns the number of likes on one target.
	*/
	CountFor(context context.Context, kind Kind, targetID string) (int, error)

	/*
		CountMany returns like counts for a batch of targets of one kind.
		Targets without likes may be absent from the map.
	*/
	CountMany(context context.Context, kind Kind, targetIDs []string) (map[string]int, error)

	/*
		LikedAmong reports which of the targets userID has liked.
	*/
	LikedAmong(context context.Context, userID string, kind Kind, targetIDs []string) (map[string]bool, error)
}
