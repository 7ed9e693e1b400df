package constants

// Идентификаторы статусов заявки. Совпадают с сидами таблицы req_statuses;
// переходы жизненного цикла завязаны на эти номера.
const (
	RequestStatusNew        uint64 = 1
	RequestStatusInProgress uint64 = 2
	RequestStatusCompleted  uint64 = 3
	RequestStatusDenied     uint64 = 4
	RequestStatusOnHold     uint64 = 5
	RequestStatusClosed     uint64 = 6
)

// Идентификаторы статусов ответа (таблица resp_statuses).
const (
	ResponseStatusAccepted uint64 = 1
	ResponseStatusDenied   uint64 = 2
)
