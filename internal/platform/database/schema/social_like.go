// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SocialLikeTable represents the 'social.like' table.
// (likedby, kind, targetid) is unique.
type SocialLikeTable struct {
	Table     string
	ID        string
	LikedBy   string
	Kind      string
	TargetID  string
	CreatedAt string
}

// SocialLike is the schema definition for social.like
var SocialLike = SocialLikeTable{
	Table:     "social.like",
	ID:        "id",
	LikedBy:   "likedby",
	Kind:      "kind",
	TargetID:  "targetid",
	CreatedAt: "createdat",
}
