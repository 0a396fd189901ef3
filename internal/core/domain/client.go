package domain

type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PlaceholderClient stands in for a client row that no longer exists.
func PlaceholderClient(id int64) Client {
	return Client{
		ID:    id,
		Name:  "client not found",
		Phone: "N/A",
	}
}
