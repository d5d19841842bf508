package models

// Order statuses an admin may assign.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lists every status accepted by the status-update
// endpoint.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether status is in the allow-list.
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order is a customer purchase request submitted from the public site.
type Order struct {
	BaseModel
	CustomerName string `json:"customer_name"`
	Whatsapp     string `json:"whatsapp"`
	Email        string `json:"email"`
	Product      string `json:"product"`
	Quantity     int    `json:"quantity"`
	Address      string `json:"address"`
	Note         string `json:"note"`
	Status       string `json:"status"`
}
