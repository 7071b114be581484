package domain

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ProfileUpdate carries a partial edit of the mutable user fields.
// Nil means "leave unchanged". Email and password are not editable here.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty"`
	DOB     *string `json:"dob,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// OwnerKey selects whose cart is visible. User ids are UUIDs, so the
// reserved guest key can never collide with a real identity.
type OwnerKey string

const OwnerGuest OwnerKey = "guest"

func OwnerForUser(userID string) OwnerKey { return OwnerKey(userID) }
