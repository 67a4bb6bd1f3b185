package events

// Topic constants for domain events emitted by the service.
const (
	TopicOrderSettled = "order.settled"
)

// TaskReceiptSend is the asynq task type that delivers an order receipt.
const TaskReceiptSend = "receipt:send"

// QueueReceipts is the asynq queue receipt tasks are routed to.
const QueueReceipts = "receipts"
