package dto

type RequestHistoryDTO struct {
	ID            uint64 `json:"id"`
	Action        string `json:"action"`
	Description   string `json:"description"`
	ActorName     string `json:"actor_name"`
	ActorSurname  string `json:"actor_surname"`
	ActorPosition string `json:"actor_position"`
	CreatedAt     string `json:"created_at"`
}
