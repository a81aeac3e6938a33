package model

// Person mirrors the persons table together with its career roles and
// genres.
type Person struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Height      *int        `json:"height,omitempty"` // centimetres
	Birthday    *Date       `json:"birthday,omitempty"`
	CareerRoles []Reference `json:"career_roles"`
	Genres      []Reference `json:"genres"`
}

// PersonInput carries a create or partial update.  Nil scalars are left
// untouched on update; nil id lists leave the relation unchanged while an
// empty list clears it.
type PersonInput struct {
	Name          *string  `json:"name"`
	Height        *int     `json:"height"`
	Birthday      *Date    `json:"birthday"`
	CareerRoleIDs []uint64 `json:"career_role_ids"`
	GenreIDs      []uint64 `json:"genre_ids"`
}

// PersonFilter narrows a person listing.
type PersonFilter struct {
	Name         string
	CareerRoleID uint64
	Page
}
