package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// VenueIDRequest binds the venue_id path parameter of wishlist routes.
type VenueIDRequest struct {
	VenueID string `uri:"venue_id" binding:"required,uuid"`
}
