package types

// CreateProfileRequest is the body of POST /profiles. Pointers tell an absent
// field from an empty one; unknown fields are ignored.
type CreateProfileRequest struct {
	Name     *string `json:"name" example:"Ada"`
	Bio      *string `json:"bio,omitempty" example:"Wrote the first program"`
	Role     *string `json:"role" example:"Engineer"`
	PhotoURL *string `json:"photo_url,omitempty" example:"/uploads/0b6c0a4e-3f0e-4a3c-9d59-4c1f1d6f2c11.png"`
}

// MissingFields lists required fields that were absent or null.
func (r CreateProfileRequest) MissingFields() []string {
	var missing []string
	if r.Name == nil {
		missing = append(missing, "name")
	}
	if r.Role == nil {
		missing = append(missing, "role")
	}
	return missing
}
