// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile projects user accounts into the small public summary that is
embedded wherever an entity shows its owner or a subscriber list is rendered.

# Core Responsibility

  - Projection: [Summary] carries id, username, display name and avatar only.
    Email, role and timestamps never leave the users schema through here.
  - Batching: [Repository.Summaries] resolves a whole page of owners in one
    round trip so list endpoints never issue one query per row.
  - Existence: [Repository.Exists] backs identifier validation for channels.

Soft-deleted accounts are treated as absent: they resolve to no summary.
*/
package profile

import "context"

// Summary is the public projection of an account.
type Summary struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// Repository defines read access to account summaries.
type Repository interface {

	/*
		Summaries resolves a batch of account ids.

		Parameters:
		  - context: context.Context
		  - ids: []string (Canonical UUIDs; duplicates allowed)

		Returns:
		  - map[string]Summary: Found accounts keyed by id. Missing or
		    deleted accounts are simply absent.
		  - error: Storage failures
	*/
	Summaries(context context.Context, ids []string) (map[string]Summary, error)

	/*
		Exists reports whether a live account with the id exists.
	*/
	Exists(context context.Context, id string) (bool, error)
}
