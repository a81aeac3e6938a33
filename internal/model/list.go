package model

// TitleList is a curated movie list or series list.  ItemCount is derived
// from the membership table on every read.
type TitleList struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ItemCount   int        `json:"item_count"`
	Items       []TitleRef `json:"items,omitempty"`
}

type TitleListInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ItemIDs     []uint64 `json:"item_ids"`
}
