package dto

type ListLikesParams struct {
	Type string `form:"type" validate:"omitempty,oneof=source target mutual"`
}

// ToggleLikeResponse reports the resulting state after a toggle. Mutual is
// true when the target already liked the caller back.
type ToggleLikeResponse struct {
	Liked  bool `json:"liked"`
	Mutual bool `json:"mutual"`
}
