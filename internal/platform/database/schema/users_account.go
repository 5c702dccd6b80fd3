// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds table and column names shared by the Postgres stores.
package schema

// UserAccountTable represents the 'users.account' table.
// Every account doubles as a channel.
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	DisplayName string
	AvatarURL   string
	CoverURL    string
	Role        string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	DisplayName: "displayname",
	AvatarURL:   "avatarurl",
	CoverURL:    "coverurl",
	Role:        "role",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}
