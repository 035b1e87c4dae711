// Package models defines the data shapes the AgriSmart client exchanges with
// the platform backend and keeps in its local stores.
package models

// User is the identity record held by the session store. Field names follow
// the backend's JSON contract.
type User struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone,omitempty"`
	Role         string  `json:"role,omitempty"`
	Language     string  `json:"language,omitempty"`
	Location     string  `json:"location,omitempty"`
	FarmSize     float64 `json:"farm_size,omitempty"`
	ProfileImage string  `json:"profile_image,omitempty"`
}

// UserPatch carries a partial profile update. Nil fields are left untouched
// by Apply; identity and credential are never part of a patch.
type UserPatch struct {
	Name         *string  `json:"name,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Language     *string  `json:"language,omitempty"`
	Location     *string  `json:"location,omitempty"`
	FarmSize     *float64 `json:"farm_size,omitempty"`
	ProfileImage *string  `json:"profile_image,omitempty"`
}

// Apply shallow-merges the patch into u, overwriting only the fields that
// are set.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Language != nil {
		u.Language = *p.Language
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.FarmSize != nil {
		u.FarmSize = *p.FarmSize
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	return u
}
