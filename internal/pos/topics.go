package pos

const (
	TopicOrderRegistered = "pos.order.registered"
	TopicOrderPaid       = "pos.order.paid"
	TopicOrderShipped    = "pos.order.shipped"
)

// Partition key = order_id, so all events of one order keep their order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
