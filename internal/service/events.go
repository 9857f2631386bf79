package service

// EventPublisher receives economy events for live observers. The websocket
// hub implements it; services treat a nil publisher as "nobody listening".
type EventPublisher interface {
	Publish(event string, payload any)
}

// Event names published by the economy services.
const (
	EventRewardGranted = "reward_granted"
	EventExchange      = "exchange"
	EventSalaryClaimed = "salary_claimed"
	EventMachineBought = "machine_bought"
	EventMachineSold   = "machine_sold"
)

func publish(p EventPublisher, event string, payload any) {
	if p != nil {
		p.Publish(event, payload)
	}
}
