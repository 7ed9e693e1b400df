package dto

type ShortUserDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type ShortFileDTO struct {
	ID       uint64 `json:"id"`
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

type LookupDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
