package pos

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusPaid      Status = "PAID"
	StatusReturned  Status = "RETURNED"
	StatusCanceled  Status = "CANCELED"
	StatusDelivered Status = "DELIVERED"
)

var validNext = map[Status]map[Status]bool{
	StatusOpen:      {StatusPaid: true, StatusCanceled: true},
	StatusPaid:      {StatusReturned: true, StatusDelivered: true},
	StatusReturned:  {},
	StatusCanceled:  {},
	StatusDelivered: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
