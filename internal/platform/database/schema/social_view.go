// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SocialViewTable represents the 'social.view' table.
// (videoid, viewerid, sessionid) is unique with NULLS NOT DISTINCT.
type SocialViewTable struct {
	Table     string
	ID        string
	VideoID   string
	ViewerID  string
	SessionID string
	CreatedAt string
}

// SocialView is the schema definition for social.view
var SocialView = SocialViewTable{
	Table:     "social.view",
	ID:        "id",
	VideoID:   "videoid",
	ViewerID:  "viewerid",
	SessionID: "sessionid",
	CreatedAt: "createdat",
}
