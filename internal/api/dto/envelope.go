package dto

// Status mirrors the HTTP status inside every response body.
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Pagination describes a paged listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	PerPage     int   `json:"perPage"`
}

// ErrorBody carries a machine-readable code and optional details.
type ErrorBody struct {
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// Envelope is the shape of every JSON response.
type Envelope struct {
	Status     Status        `json:"status"`
	Data       any           `json:"data,omitempty"`
	Pagination *Pagination   `json:"pagination,omitempty"`
	Auth       *AuthResponse `json:"auth,omitempty"`
	Error      *ErrorBody    `json:"error,omitempty"`
}
