package entity

import "time"

// User is a local mirror of one Clerk account, stored in the hosted
// PostgreSQL "users" table.
//
// ID is generated by the database when omitted on insert. ClerkID is the
// identity provider's subject id and is the lookup key for every operation
// except creation; the unique index on it is what makes duplicate syncs fail
// instead of forking rows.
type User struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClerkID   string    `gorm:"column:clerk_id;size:64;uniqueIndex;not null" json:"clerkId"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Name      *string   `gorm:"size:100" json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserUpdate carries the mutable subset of a user row for partial updates.
// A nil field means "leave unchanged": omitted, not nulled.
type UserUpdate struct {
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
}

// Fields returns the non-nil fields as a column-to-value map suitable for a
// single UPDATE ... SET statement. The map is empty when nothing was supplied.
func (u UserUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Email != nil {
		fields["email"] = *u.Email
	}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	return fields
}
