package orders

import "strconv"

const TopicOrderCreated = "order.created"

// PartitionKey keys events by buyer so one buyer's orders stay ordered.
func PartitionKey(buyerID int64) []byte {
	return []byte(strconv.FormatInt(buyerID, 10))
}
