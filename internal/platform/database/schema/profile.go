// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ProfileTable represents the 'profiles' table (user profile (one per auth user))
type ProfileTable struct {
	Table       string
	ID          string
	DisplayName string
	Email       string
	AvatarURL   string
	Role        string
	IsDisabled  string
	CreatedAt   string
	UpdatedAt   string
}

// Profile is the schema definition for profiles
var Profile = ProfileTable{
	Table:       "profiles",
	ID:          "id",
	DisplayName: "display_name",
	Email:       "email",
	AvatarURL:   "avatar_url",
	Role:        "role",
	IsDisabled:  "is_disabled",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t ProfileTable) Columns() []string {
	return []string{t.ID, t.DisplayName, t.Email, t.AvatarURL, t.Role, t.IsDisabled, t.CreatedAt, t.UpdatedAt}
}
